package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/inventory"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
	"github.com/andrescamacho/bakerysim-go/internal/domain/sales"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewCatalog(helpers.TestProducts())
	require.NoError(t, err)
	return c
}

func stocked(t *testing.T, quantities map[string]int) *inventory.Inventory {
	t.Helper()
	inv := inventory.New()
	for id, qty := range quantities {
		require.NoError(t, inv.Restock(id, qty))
	}
	return inv
}

func TestComputeSales_DemandFormula(t *testing.T) {
	// rand 0.5 → floor(0.5*401 + 200) = 400 base demand per product
	engine := sales.NewEngine(newCatalog(t), helpers.NewFixedRandom(0.5, 0))
	inv := stocked(t, map[string]int{"croissant": 1400, "toast": 100})

	result := engine.ComputeSales(inv, sales.Conditions{
		RegionCoefficient:  1.0,
		EconomicMultiplier: event.SignalHot.Multiplier(),
		OptionCoefficient:  1.0,
	})

	require.Len(t, result.Details, 2)
	croissant := result.Details[0]
	assert.Equal(t, 400, croissant.RandomDemand)
	assert.Equal(t, 480, croissant.AdjustedDemand)
	assert.Equal(t, 480, croissant.Sold)
	assert.Equal(t, 480*25, croissant.Revenue)

	// toast is limited by stock
	toast := result.Details[1]
	assert.Equal(t, 100, toast.StockBefore)
	assert.Equal(t, 100, toast.Sold)

	assert.Equal(t, 580, result.TotalSalesVolume)
	assert.Equal(t, 480*25+100*30, result.TotalRevenue)
	assert.Equal(t, 920, inv.Quantity("croissant"))
	assert.Equal(t, 0, inv.Quantity("toast"))
}

func TestComputeSales_DemandRange(t *testing.T) {
	c := newCatalog(t)
	conditions := sales.Conditions{RegionCoefficient: 1, EconomicMultiplier: 1, OptionCoefficient: 1}

	low := sales.NewEngine(c, helpers.NewFixedRandom(0, 0)).ComputeSales(stocked(t, nil), conditions)
	high := sales.NewEngine(c, helpers.NewFixedRandom(0.999999, 0)).ComputeSales(stocked(t, nil), conditions)

	assert.Equal(t, sales.MinRandomDemand, low.Details[0].RandomDemand)
	assert.Equal(t, 600, high.Details[0].RandomDemand)
}

func TestComputeSales_EmptyInventorySellsNothing(t *testing.T) {
	engine := sales.NewEngine(newCatalog(t), helpers.NewFixedRandom(0.5, 0))
	result := engine.ComputeSales(inventory.New(), sales.Conditions{RegionCoefficient: 1, EconomicMultiplier: 1, OptionCoefficient: 1})

	assert.Equal(t, 0, result.TotalRevenue)
	assert.Equal(t, 0, result.TotalSalesVolume)
	for _, d := range result.Details {
		assert.GreaterOrEqual(t, d.AdjustedDemand, 0)
	}
}

func TestComputeSales_RepeatedPassesDeplete(t *testing.T) {
	engine := sales.NewEngine(newCatalog(t), helpers.NewFixedRandom(0.5, 0))
	inv := stocked(t, map[string]int{"croissant": 1000})
	conditions := sales.Conditions{RegionCoefficient: 1, EconomicMultiplier: 1, OptionCoefficient: 1}

	first := engine.ComputeSales(inv, conditions)
	second := engine.ComputeSales(inv, conditions)
	third := engine.ComputeSales(inv, conditions)

	assert.Equal(t, 400, first.Details[0].Sold)
	assert.Equal(t, 400, second.Details[0].Sold)
	assert.Equal(t, 200, third.Details[0].Sold)
	assert.Equal(t, 0, inv.Quantity("croissant"))
}

func TestComputePartialSales_ConsumptionCap(t *testing.T) {
	engine := sales.NewEngine(newCatalog(t), helpers.NewFixedRandom(0.5, 0))
	inv := stocked(t, map[string]int{"croissant": 1500, "toast": 1000})

	result := engine.ComputePartialSales(inv, sales.Conditions{RegionCoefficient: 1, EconomicMultiplier: 1, OptionCoefficient: 1}, 0.1)

	// demand 400, cap floor(1500*0.1)=150 and floor(1000*0.1)=100
	assert.Equal(t, 150, result.Details[0].Sold)
	assert.Equal(t, 100, result.Details[1].Sold)
	assert.Equal(t, 1350, inv.Quantity("croissant"))
	assert.Equal(t, 900, inv.Quantity("toast"))
}

func TestNewConditions(t *testing.T) {
	table, err := region.NewTable(helpers.TestRegions())
	require.NoError(t, err)

	c, err := sales.NewConditions(table, helpers.CommercialRegion, "站前", event.SignalLow, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.3*0.8*0.5, c.Multiplier(), 1e-9)

	_, err = sales.NewConditions(table, helpers.CommercialRegion, "nowhere", event.SignalLow, 1)
	assert.Error(t, err)
}
