package helpers

import (
	"fmt"
	"testing"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/content"
	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
)

// Region types of the small fixture content
const (
	ResidentialRegion = "住宅區"
	CommercialRegion  = "商業區"
)

// EmbeddedContent loads the content shipped with the binary
func EmbeddedContent(t *testing.T) game.Content {
	t.Helper()
	c, err := content.LoadEmbedded()
	if err != nil {
		t.Fatalf("failed to load embedded content: %v", err)
	}
	return c
}

// TestRegions is a two-region table: residential (26000) and commercial (35000)
func TestRegions() []region.Region {
	return []region.Region{
		{Type: ResidentialRegion, BaseRent: 26000, Districts: []region.District{
			{Name: "中正里", Coefficient: 1.0},
			{Name: "信義里", Coefficient: 1.1},
		}},
		{Type: CommercialRegion, BaseRent: 35000, Districts: []region.District{
			{Name: "站前", Coefficient: 1.3},
		}},
	}
}

// TestProducts is a two-product catalog
func TestProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "croissant", Name: "Croissant", Cost: 9, Price: 25},
		{ID: "toast", Name: "Toast", Cost: 12, Price: 30},
	}
}

// TestEvent builds an event whose option "a" is correct:
//
//	a: coefficient 1.0, currency +1000, satisfaction +5, reputation +2
//	b: coefficient 0.8, currency -2000, satisfaction -4
//	c: coefficient 0.5, no effects
func TestEvent(id string, signal event.EconomicSignal) event.Event {
	return event.Event{
		ID:        id,
		Title:     "Event " + id,
		Signal:    signal,
		StoryText: "Something happens near the shop.",
		Options: []event.Option{
			{ID: "a", Text: "Adapt", FeedbackText: "Customers loved it", Coefficient: 1.0,
				Effects: resources.Effects{Currency: 1000, Satisfaction: 5, Reputation: 2}, Correct: true},
			{ID: "b", Text: "Ignore", FeedbackText: "Customers left", Coefficient: 0.8,
				Effects: resources.Effects{Currency: -2000, Satisfaction: -4}},
			{ID: "c", Text: "Wait", FeedbackText: "Nothing changed", Coefficient: 0.5},
		},
	}
}

// TestContent builds small deterministic content with perRegion events per region type
func TestContent(t *testing.T, perRegion int) game.Content {
	t.Helper()
	c, err := BuildTestContent(perRegion)
	if err != nil {
		t.Fatalf("failed to build test content: %v", err)
	}
	return c
}

// BuildTestContent is TestContent for callers without a *testing.T, such as BDD steps
func BuildTestContent(perRegion int) (game.Content, error) {
	regions, err := region.NewTable(TestRegions())
	if err != nil {
		return game.Content{}, fmt.Errorf("failed to build regions: %w", err)
	}
	products, err := catalog.NewCatalog(TestProducts())
	if err != nil {
		return game.Content{}, fmt.Errorf("failed to build catalog: %w", err)
	}

	byRegion := make(map[string][]event.Event)
	for _, rt := range regions.Types() {
		for i := 0; i < perRegion; i++ {
			byRegion[rt] = append(byRegion[rt], TestEvent(fmt.Sprintf("%s-%02d", rt, i+1), event.SignalNormal))
		}
	}
	events, err := event.NewDataset(byRegion)
	if err != nil {
		return game.Content{}, fmt.Errorf("failed to build events: %w", err)
	}

	return game.Content{Regions: regions, Catalog: products, Events: events}, nil
}
