package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProduct is returned when a product fails validation
	ErrInvalidProduct = errors.New("invalid product")

	// ErrEmptyCatalog is returned when no products are supplied
	ErrEmptyCatalog = errors.New("product catalog is empty")
)

// ErrUnknownProduct indicates a product ID that is not in the catalog
type ErrUnknownProduct struct {
	ProductID string
}

func (e *ErrUnknownProduct) Error() string {
	return fmt.Sprintf("unknown product: %s", e.ProductID)
}

// Product is a sellable good (immutable value object).
// Cost is what the bakery pays per unit when stocking, Price what customers pay.
type Product struct {
	ID    string
	Name  string
	Cost  int
	Price int
}

// NewProduct creates a Product with validation: 0 < cost < price
func NewProduct(id, name string, cost, price int) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("%w: id cannot be empty", ErrInvalidProduct)
	}
	if cost <= 0 {
		return Product{}, fmt.Errorf("%w: %s cost must be positive", ErrInvalidProduct, id)
	}
	if price <= cost {
		return Product{}, fmt.Errorf("%w: %s price %d must exceed cost %d", ErrInvalidProduct, id, price, cost)
	}
	return Product{ID: id, Name: name, Cost: cost, Price: price}, nil
}

// Margin returns the per-unit profit
func (p Product) Margin() int {
	return p.Price - p.Cost
}
