package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
)

func TestNewProduct_Validation(t *testing.T) {
	p, err := catalog.NewProduct("croissant", "Croissant", 9, 25)
	require.NoError(t, err)
	assert.Equal(t, 16, p.Margin())

	_, err = catalog.NewProduct("", "x", 1, 2)
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
	_, err = catalog.NewProduct("x", "x", 0, 2)
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
	_, err = catalog.NewProduct("x", "x", 5, 5)
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestNewCatalog(t *testing.T) {
	c, err := catalog.NewCatalog([]catalog.Product{
		{ID: "croissant", Name: "Croissant", Cost: 9, Price: 25},
		{ID: "toast", Name: "Toast", Cost: 12, Price: 30},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "croissant", c.Products()[0].ID)
	toast, ok := c.Product("toast")
	require.True(t, ok)
	assert.Equal(t, 30, toast.Price)

	_, ok = c.Product("bagel")
	assert.False(t, ok)
}

func TestNewCatalog_Rejects(t *testing.T) {
	_, err := catalog.NewCatalog(nil)
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)

	_, err = catalog.NewCatalog([]catalog.Product{
		{ID: "a", Cost: 1, Price: 2},
		{ID: "a", Cost: 1, Price: 3},
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}

func TestCatalog_OrderCost(t *testing.T) {
	c, err := catalog.NewCatalog([]catalog.Product{
		{ID: "croissant", Cost: 9, Price: 25},
		{ID: "toast", Cost: 12, Price: 30},
	})
	require.NoError(t, err)

	cost, err := c.OrderCost(map[string]int{"croissant": 1400})
	require.NoError(t, err)
	assert.Equal(t, 12600, cost)

	cost, err = c.OrderCost(map[string]int{"croissant": 10, "toast": 5})
	require.NoError(t, err)
	assert.Equal(t, 150, cost)

	_, err = c.OrderCost(map[string]int{"bagel": 1})
	var unknown *catalog.ErrUnknownProduct
	assert.True(t, errors.As(err, &unknown))

	_, err = c.OrderCost(map[string]int{"toast": -1})
	assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
}
