package catalog

import "fmt"

// Catalog is the fixed, ordered list of products a bakery can stock and sell
type Catalog struct {
	products []Product
	byID     map[string]int
}

// NewCatalog validates products and builds an immutable Catalog
func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		validated, err := NewProduct(p.ID, p.Name, p.Cost, p.Price)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %s", ErrInvalidProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, validated)
	}
	return c, nil
}

// Products returns a copy of the catalog in order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a product by ID
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// OrderCost prices a stocking order (product ID → units).
// Unknown products and negative quantities are rejected.
func (c *Catalog) OrderCost(order map[string]int) (int, error) {
	total := 0
	for id, qty := range order {
		p, ok := c.Product(id)
		if !ok {
			return 0, &ErrUnknownProduct{ProductID: id}
		}
		if qty < 0 {
			return 0, fmt.Errorf("%w: negative quantity %d for %s", ErrInvalidProduct, qty, id)
		}
		total += qty * p.Cost
	}
	return total, nil
}
