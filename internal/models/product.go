package models

// Product is a single inventory row. Negative prices and quantities are
// not rejected; only type coercion is enforced on input.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}
