package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rahulvj/atm-inventory-be/internal/apperr"
	"github.com/rahulvj/atm-inventory-be/internal/models"
)

// LowStockThreshold is the quantity below which a product is flagged.
// The comparison is strict: a product holding exactly the threshold is
// not low stock.
const LowStockThreshold = 5

// ProductServiceProvider defines the interface for product services.
type ProductServiceProvider interface {
	List() ([]models.Product, error)
	Add(input ProductInput) (models.Product, error)
	Update(id int64, input ProductInput) (models.Product, error)
	Remove(id int64) error
	LowStock(threshold int64) ([]models.Product, error)
	SalesSummary() (float64, error)
}

// ProductInput carries the raw form fields of a create or update. The
// fields stay text until the service coerces them, so a bad number is a
// validation failure here rather than a decode failure at the edge.
type ProductInput struct {
	Name     string `json:"name" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

// ProductService provides CRUD and the two aggregate queries over the
// products table. Each call is its own implicit transaction.
type ProductService struct {
	db       *sql.DB
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db, validate: validator.New()}
}

// parse validates and coerces raw form input. Negative values pass; only
// presence and type are enforced.
func (s *ProductService) parse(input ProductInput) (name string, price float64, quantity int64, err error) {
	if err := s.validate.Struct(input); err != nil {
		return "", 0, 0, apperr.Validation("all fields are required")
	}

	price, perr := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	quantity, qerr := strconv.ParseInt(strings.TrimSpace(input.Quantity), 10, 64)
	if perr != nil || qerr != nil {
		return "", 0, 0, apperr.Validation("price must be a number and quantity must be an integer")
	}
	return input.Name, price, quantity, nil
}

// List returns every product in storage order.
func (s *ProductService) List() ([]models.Product, error) {
	rows, err := s.db.Query("SELECT id, name, price, quantity FROM products")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(id int64) (models.Product, error) {
	var p models.Product
	row := s.db.QueryRow("SELECT id, name, price, quantity FROM products WHERE id = ?", id)
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Product{}, apperr.NotFound(fmt.Sprintf("product %d not found", id))
		}
		return models.Product{}, err
	}
	return p, nil
}

// Add inserts a new product and returns it with its assigned id.
func (s *ProductService) Add(input ProductInput) (models.Product, error) {
	name, price, quantity, err := s.parse(input)
	if err != nil {
		return models.Product{}, err
	}

	stmt, err := s.db.Prepare("INSERT INTO products (name, price, quantity) VALUES (?, ?, ?)")
	if err != nil {
		return models.Product{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(name, price, quantity)
	if err != nil {
		return models.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{ID: id, Name: name, Price: price, Quantity: quantity}, nil
}

// Update overwrites the product matching id with the given fields.
func (s *ProductService) Update(id int64, input ProductInput) (models.Product, error) {
	name, price, quantity, err := s.parse(input)
	if err != nil {
		return models.Product{}, err
	}

	if _, err := s.Get(id); err != nil {
		return models.Product{}, err
	}

	stmt, err := s.db.Prepare("UPDATE products SET name = ?, price = ?, quantity = ? WHERE id = ?")
	if err != nil {
		return models.Product{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(name, price, quantity, id); err != nil {
		return models.Product{}, err
	}

	return s.Get(id)
}

// Remove deletes the product matching id. Deleting a row that is already
// gone is not distinguished from success.
func (s *ProductService) Remove(id int64) error {
	_, err := s.db.Exec("DELETE FROM products WHERE id = ?", id)
	return err
}

// LowStock returns every product with quantity strictly below threshold.
func (s *ProductService) LowStock(threshold int64) ([]models.Product, error) {
	rows, err := s.db.Query("SELECT id, name, price, quantity FROM products WHERE quantity < ?", threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// SalesSummary returns SUM(price * quantity) over all products, 0 when the
// table is empty. Despite the name this is the value of current stock, not
// historical sales; the name is kept from the system this replaces.
func (s *ProductService) SalesSummary() (float64, error) {
	var total float64
	err := s.db.QueryRow("SELECT COALESCE(SUM(price * quantity), 0) FROM products").Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// scanProducts is a helper to drain a product rows object.
func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
