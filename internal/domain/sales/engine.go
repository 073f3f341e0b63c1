package sales

import (
	"fmt"
	"math"

	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/inventory"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/pkg/utils"
)

const (
	// MinRandomDemand is the lowest base demand drawn per product
	MinRandomDemand = 200

	// DemandSpread is the number of distinct base demand values (200..600 inclusive)
	DemandSpread = 401
)

// Conditions are the environmental multipliers applied to base demand
type Conditions struct {
	RegionCoefficient  float64
	EconomicMultiplier float64
	OptionCoefficient  float64
}

// NewConditions resolves the coefficients of one sales pass
func NewConditions(table *region.Table, regionType, district string, signal event.EconomicSignal, optionCoefficient float64) (Conditions, error) {
	coefficient, err := table.Coefficient(regionType, district)
	if err != nil {
		return Conditions{}, fmt.Errorf("failed to resolve sales conditions: %w", err)
	}
	return Conditions{
		RegionCoefficient:  coefficient,
		EconomicMultiplier: signal.Multiplier(),
		OptionCoefficient:  optionCoefficient,
	}, nil
}

// Multiplier returns the combined demand multiplier
func (c Conditions) Multiplier() float64 {
	return c.RegionCoefficient * c.EconomicMultiplier * c.OptionCoefficient
}

// ProductSale is the per-product detail of a sales pass
type ProductSale struct {
	ProductID      string
	RandomDemand   int
	AdjustedDemand int
	StockBefore    int
	Sold           int
	Revenue        int
}

// Result is the value object returned by a sales pass
type Result struct {
	TotalRevenue     int
	TotalSalesVolume int
	Details          []ProductSale
}

// Engine converts inventory and market conditions into sales
type Engine struct {
	catalog *catalog.Catalog
	rng     shared.Random
}

// NewEngine creates a sales engine over a catalog and a random source
func NewEngine(c *catalog.Catalog, rng shared.Random) *Engine {
	return &Engine{catalog: c, rng: rng}
}

// ComputeSales evaluates every catalog product once:
//
//	randomDemand   = floor(rand*401 + 200)
//	adjustedDemand = floor(randomDemand × region × economy × option)
//	sold           = min(stock, adjustedDemand)
//
// Sold units are removed from the inventory, so later passes in the same
// round see the depleted stock.
func (e *Engine) ComputeSales(inv *inventory.Inventory, c Conditions) Result {
	return e.compute(inv, c, nil)
}

// ComputePartialSales is the opponent variant of ComputeSales: each product
// additionally sells at most floor(stock × consumptionRate) units.
func (e *Engine) ComputePartialSales(inv *inventory.Inventory, c Conditions, consumptionRate float64) Result {
	return e.compute(inv, c, &consumptionRate)
}

func (e *Engine) compute(inv *inventory.Inventory, c Conditions, consumptionRate *float64) Result {
	result := Result{Details: make([]ProductSale, 0, e.catalog.Len())}
	multiplier := c.Multiplier()

	for _, p := range e.catalog.Products() {
		randomDemand := int(math.Floor(e.rng.Float64()*DemandSpread + MinRandomDemand))
		adjustedDemand := int(math.Floor(float64(randomDemand) * multiplier))
		stock := inv.Quantity(p.ID)

		limit := adjustedDemand
		if consumptionRate != nil {
			limit = utils.Min(limit, int(math.Floor(float64(stock)*(*consumptionRate))))
		}

		sold := inv.Consume(p.ID, utils.Min(stock, limit))
		revenue := sold * p.Price

		result.TotalRevenue += revenue
		result.TotalSalesVolume += sold
		result.Details = append(result.Details, ProductSale{
			ProductID:      p.ID,
			RandomDemand:   randomDemand,
			AdjustedDemand: adjustedDemand,
			StockBefore:    stock,
			Sold:           sold,
			Revenue:        revenue,
		})
	}

	return result
}
