package models

// Account is an ATM account held entirely in memory. Transactions is an
// append-only log of human-readable entries, oldest first.
type Account struct {
	PIN           string   `json:"-"`
	Name          string   `json:"name"`
	AccountNumber string   `json:"accountNumber"`
	Balance       float64  `json:"balance"`
	Transactions  []string `json:"transactions"`
}
