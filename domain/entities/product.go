package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Category is stored lowercased so distinct
// category enumeration and filtering never depend on input casing.
type Product struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProduct creates a product with a fresh ID and normalized category.
func NewProduct(name, photo, category string, price float64, stock int) (*Product, error) {
	if name == "" {
		return nil, errors.New("product name is required")
	}
	if category == "" {
		return nil, errors.New("product category is required")
	}
	if price < 0 {
		return nil, errors.New("product price cannot be negative")
	}
	if stock < 0 {
		return nil, errors.New("product stock cannot be negative")
	}

	now := time.Now().UTC()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		Photo:     photo,
		Price:     price,
		Stock:     stock,
		Category:  strings.ToLower(category),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// InStock reports whether any units remain.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ReduceStock removes quantity units from stock.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// AddStock adds quantity units to stock. Product edits send a delta, not an
// absolute value.
func (p *Product) AddStock(quantity int) {
	p.Stock += quantity
	p.UpdatedAt = time.Now().UTC()
}
