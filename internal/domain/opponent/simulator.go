package opponent

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/sales"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

const (
	// MinConsumptionRate is the lowest share of held stock an opponent can sell per event
	MinConsumptionRate = 0.10

	// MaxConsumptionRate is the highest share of held stock an opponent can sell per event
	MaxConsumptionRate = 0.20
)

// RegionDecision is the outcome of an opponent's region selection
type RegionDecision struct {
	RegionType string
	District   string
	Rent       int

	// SatOut is true when no region was affordable
	SatOut bool
}

// StockDecision is the outcome of an opponent's stocking
type StockDecision struct {
	Quantities map[string]int
	Cost       int

	// ScaledDown is true when the order was reduced to what the opponent could afford
	ScaledDown bool
}

// EventOutcome is the result of an opponent playing one event
type EventOutcome struct {
	EventID     string
	Choice      Choice
	Sales       sales.Result
	Skipped     bool
	Consumption float64
}

// Simulator mirrors the player's round for opponents using the same content and sales model
type Simulator struct {
	regions        *region.Table
	catalog        *catalog.Catalog
	events         *event.Dataset
	engine         *sales.Engine
	rng            shared.Random
	eventsPerRound int
}

// NewSimulator creates a simulator over the shared content
func NewSimulator(regions *region.Table, c *catalog.Catalog, events *event.Dataset, rng shared.Random, eventsPerRound int) *Simulator {
	return &Simulator{
		regions:        regions,
		catalog:        c,
		events:         events,
		engine:         sales.NewEngine(c, rng),
		rng:            rng,
		eventsPerRound: eventsPerRound,
	}
}

// SelectRegion chooses the opponent's region by personality and pays rent.
// When the preferred region is unaffordable the cheapest affordable one is
// taken; when none is affordable the opponent sits out the round.
func (s *Simulator) SelectRegion(o *Opponent) (RegionDecision, error) {
	if o.Round.HasRegion() {
		return RegionDecision{}, round.ErrRegionAlreadySelected
	}

	byRent := s.regions.ByRent()
	chosen, ok := o.Personality.PreferredRegion(byRent)
	if !ok {
		return RegionDecision{}, region.ErrEmptyTable
	}
	if !o.Resources.CanAfford(chosen.BaseRent) {
		affordable := false
		for _, r := range byRent {
			if o.Resources.CanAfford(r.BaseRent) {
				chosen, affordable = r, true
				break
			}
		}
		if !affordable {
			o.Stats.RoundsSkipped++
			return RegionDecision{SatOut: true}, nil
		}
	}

	district := chosen.Districts[s.rng.Intn(len(chosen.Districts))]
	if err := o.Resources.Debit(shared.FundsPurposeRent, chosen.BaseRent); err != nil {
		return RegionDecision{}, err
	}
	if err := o.Round.SelectRegion(chosen.Type, district.Name, district.Coefficient); err != nil {
		return RegionDecision{}, err
	}
	// An opponent never shows a report screen
	o.Round.AcknowledgeReport()
	o.Stats.RentPaid += chosen.BaseRent

	return RegionDecision{RegionType: chosen.Type, District: district.Name, Rent: chosen.BaseRent}, nil
}

// Stock orders BaseStockQuantity plus a personality bonus of every product.
// An unaffordable order is scaled down proportionally.
func (s *Simulator) Stock(o *Opponent) (StockDecision, error) {
	if err := o.Round.CanStock(); err != nil {
		return StockDecision{}, err
	}

	order := make(map[string]int, s.catalog.Len())
	for _, p := range s.catalog.Products() {
		order[p.ID] = BaseStockQuantity + s.rng.Intn(o.Personality.MaxStockBonus()+1)
	}
	cost, err := s.catalog.OrderCost(order)
	if err != nil {
		return StockDecision{}, err
	}

	decision := StockDecision{Quantities: order, Cost: cost}
	if cost > o.Resources.Currency {
		decision = s.scaleOrder(order, o.Resources.Currency)
	}

	if err := o.Resources.Debit(shared.FundsPurposeStock, decision.Cost); err != nil {
		return StockDecision{}, err
	}
	for id, qty := range decision.Quantities {
		if err := o.Inventory.Restock(id, qty); err != nil {
			return StockDecision{}, err
		}
	}
	if err := o.Round.MarkStocked(); err != nil {
		return StockDecision{}, err
	}
	o.Stats.StockSpent += decision.Cost
	return decision, nil
}

func (s *Simulator) scaleOrder(order map[string]int, budget int) StockDecision {
	full, _ := s.catalog.OrderCost(order)
	scaled := make(map[string]int, len(order))
	cost := 0
	if budget > 0 && full > 0 {
		ratio := float64(budget) / float64(full)
		for _, p := range s.catalog.Products() {
			qty := int(float64(order[p.ID]) * ratio)
			scaled[p.ID] = qty
			cost += qty * p.Cost
		}
	}
	return StockDecision{Quantities: scaled, Cost: cost, ScaledDown: true}
}

// PlayEvent plays the opponent's next event of the round: a decision, its
// direct effects and a partial sales pass over the held inventory.
// An opponent sitting out the round skips the event.
func (s *Simulator) PlayEvent(o *Opponent) (EventOutcome, error) {
	if err := o.Round.CanPlayEvents(); err != nil {
		if errors.Is(err, round.ErrRegionSelectionRequired) || errors.Is(err, round.ErrStockingRequired) {
			return EventOutcome{Skipped: true}, nil
		}
		return EventOutcome{}, err
	}
	if o.Round.EventsCompleted >= s.eventsPerRound {
		return EventOutcome{}, round.ErrRoundComplete
	}

	e, err := s.events.EventAt(o.Round.RegionType, o.Round.EventsCompleted)
	if err != nil {
		return EventOutcome{}, fmt.Errorf("opponent %s: %w", o.ID, err)
	}

	choice := Decide(s.rng, o.Personality, o.SkillLevel, e)
	o.Resources.Apply(choice.Effects, resources.OpponentBounds())

	rate := shared.FloatInRange(s.rng, MinConsumptionRate, MaxConsumptionRate)
	conditions := sales.Conditions{
		RegionCoefficient:  o.Round.Coefficient,
		EconomicMultiplier: e.Signal.Multiplier(),
		OptionCoefficient:  choice.Option.Coefficient,
	}
	result := s.engine.ComputePartialSales(o.Inventory, conditions, rate)
	o.Resources.Credit(result.TotalRevenue)

	if _, err := o.Round.CompleteEvent(s.eventsPerRound); err != nil {
		return EventOutcome{}, err
	}
	o.Stats.EventsPlayed++
	if choice.Correct {
		o.Stats.CorrectChoices++
	}
	o.Stats.TotalRevenue += result.TotalRevenue
	o.Stats.TotalSalesVolume += result.TotalSalesVolume

	return EventOutcome{EventID: e.ID, Choice: choice, Sales: result, Consumption: rate}, nil
}

// CompleteRound moves the opponent to the next round in lockstep with the
// player. Inventory is kept; round-scoped flags reset.
func (s *Simulator) CompleteRound(o *Opponent) {
	if o.Round.HasStocked {
		o.Stats.RoundsPlayed++
	}
	o.Round.Advance()
	o.Round.AcknowledgeReport()
}
