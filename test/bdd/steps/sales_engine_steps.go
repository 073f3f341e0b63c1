package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/inventory"
	"github.com/andrescamacho/bakerysim-go/internal/domain/sales"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

// salesContext holds state for sales engine scenarios
type salesContext struct {
	catalog   *catalog.Catalog
	inventory *inventory.Inventory
	roll      float64
	result    sales.Result
}

func (sc *salesContext) reset() {
	sc.catalog = nil
	sc.inventory = inventory.New()
	sc.roll = 0
	sc.result = sales.Result{}
}

func (sc *salesContext) aCatalogWithProducts(table *godog.Table) error {
	records, err := tableRecords(table)
	if err != nil {
		return err
	}
	products := make([]catalog.Product, 0, len(records))
	for _, r := range records {
		cost, err := intField(r, "cost")
		if err != nil {
			return err
		}
		price, err := intField(r, "price")
		if err != nil {
			return err
		}
		products = append(products, catalog.Product{ID: r["id"], Name: r["id"], Cost: cost, Price: price})
	}
	sc.catalog, err = catalog.NewCatalog(products)
	return err
}

func (sc *salesContext) theInventoryHolds(qtyA int, productA string, qtyB int, productB string) error {
	sc.inventory = inventory.FromQuantities(map[string]int{productA: qtyA, productB: qtyB})
	return nil
}

func (sc *salesContext) theDemandRollIs(roll float64) error {
	sc.roll = roll
	return nil
}

func (sc *salesContext) salesRunWith(regionCoefficient float64, signal string, optionCoefficient float64) error {
	parsed, err := event.ParseEconomicSignal(signal)
	if err != nil {
		return err
	}
	engine := sales.NewEngine(sc.catalog, helpers.NewFixedRandom(sc.roll, 0))
	sc.result = engine.ComputeSales(sc.inventory, sales.Conditions{
		RegionCoefficient:  regionCoefficient,
		EconomicMultiplier: parsed.Multiplier(),
		OptionCoefficient:  optionCoefficient,
	})
	return nil
}

func (sc *salesContext) opponentSalesRunWith(rate float64) error {
	engine := sales.NewEngine(sc.catalog, helpers.NewFixedRandom(sc.roll, 0))
	sc.result = engine.ComputePartialSales(sc.inventory, sales.Conditions{
		RegionCoefficient:  1,
		EconomicMultiplier: 1,
		OptionCoefficient:  1,
	}, rate)
	return nil
}

func (sc *salesContext) detail(productID string) (sales.ProductSale, error) {
	for _, d := range sc.result.Details {
		if d.ProductID == productID {
			return d, nil
		}
	}
	return sales.ProductSale{}, fmt.Errorf("no sales line for %s", productID)
}

func (sc *salesContext) productSellsUnits(productID string, units int) error {
	d, err := sc.detail(productID)
	if err != nil {
		return err
	}
	if d.Sold != units {
		return fmt.Errorf("expected %s to sell %d units, sold %d", productID, units, d.Sold)
	}
	return nil
}

func (sc *salesContext) theBaseDemandIs(productID string, demand int) error {
	d, err := sc.detail(productID)
	if err != nil {
		return err
	}
	if d.RandomDemand != demand {
		return fmt.Errorf("expected base demand %d, got %d", demand, d.RandomDemand)
	}
	return nil
}

func (sc *salesContext) theTotalRevenueIs(revenue int) error {
	if sc.result.TotalRevenue != revenue {
		return fmt.Errorf("expected revenue %d, got %d", revenue, sc.result.TotalRevenue)
	}
	return nil
}

func (sc *salesContext) theTotalSalesVolumeIs(volume int) error {
	if sc.result.TotalSalesVolume != volume {
		return fmt.Errorf("expected volume %d, got %d", volume, sc.result.TotalSalesVolume)
	}
	return nil
}

func (sc *salesContext) unitsRemainInStock(qty int, productID string) error {
	if got := sc.inventory.Quantity(productID); got != qty {
		return fmt.Errorf("expected %d %s in stock, got %d", qty, productID, got)
	}
	return nil
}

// InitializeSalesEngineScenario registers sales engine steps
func InitializeSalesEngineScenario(ctx *godog.ScenarioContext) {
	sc := &salesContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	ctx.Step(`^a catalog with products:$`, sc.aCatalogWithProducts)
	ctx.Step(`^the inventory holds (\d+) "([^"]*)" and (\d+) "([^"]*)"$`, sc.theInventoryHolds)
	ctx.Step(`^the demand roll is (\d+(?:\.\d+)?)$`, sc.theDemandRollIs)
	ctx.Step(`^sales run with region coefficient (\d+(?:\.\d+)?), signal "([^"]*)" and option coefficient (\d+(?:\.\d+)?)$`, sc.salesRunWith)
	ctx.Step(`^opponent sales run with consumption rate (\d+(?:\.\d+)?)$`, sc.opponentSalesRunWith)
	ctx.Step(`^"([^"]*)" sells (\d+) units$`, sc.productSellsUnits)
	ctx.Step(`^the base demand of "([^"]*)" is (\d+)$`, sc.theBaseDemandIs)
	ctx.Step(`^the total revenue is (\d+)$`, sc.theTotalRevenueIs)
	ctx.Step(`^the total sales volume is (\d+)$`, sc.theTotalSalesVolumeIs)
	ctx.Step(`^(\d+) "([^"]*)" remain in stock$`, sc.unitsRemainInStock)
}
