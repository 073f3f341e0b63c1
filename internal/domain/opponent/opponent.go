package opponent

import (
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/domain/inventory"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// Stats are the running totals used for ranking
type Stats struct {
	RoundsPlayed     int `json:"rounds_played"`
	RoundsSkipped    int `json:"rounds_skipped"`
	EventsPlayed     int `json:"events_played"`
	CorrectChoices   int `json:"correct_choices"`
	TotalRevenue     int `json:"total_revenue"`
	TotalSalesVolume int `json:"total_sales_volume"`
	RentPaid         int `json:"rent_paid"`
	StockSpent       int `json:"stock_spent"`
}

// Accuracy is the share of events answered correctly
func (s Stats) Accuracy() float64 {
	if s.EventsPlayed == 0 {
		return 0
	}
	return float64(s.CorrectChoices) / float64(s.EventsPlayed)
}

// Opponent is a simulated competitor.
//
// Each opponent owns its resources and inventory exclusively. Inventory is
// carried across rounds; only the round state resets at round transition.
type Opponent struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Personality Personality          `json:"personality"`
	SkillLevel  float64              `json:"skill_level"`
	Resources   resources.State      `json:"resources"`
	Round       round.State          `json:"round_state"`
	Inventory   *inventory.Inventory `json:"inventory"`
	Stats       Stats                `json:"stats"`
}

// New creates an opponent with starting resources
func New(id, name string, personality Personality, skill float64, start resources.State) (*Opponent, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "opponent id cannot be empty")
	}
	if id == shared.HumanActorID {
		return nil, shared.NewValidationError("id", "opponent id is reserved for the player")
	}
	if !personality.IsValid() {
		return nil, shared.NewValidationError("personality", fmt.Sprintf("unknown personality %q", personality))
	}
	if skill < 0 || skill > 1 {
		return nil, shared.NewValidationError("skill_level", "must be within [0, 1]")
	}
	return &Opponent{
		ID:          id,
		Name:        name,
		Personality: personality,
		SkillLevel:  skill,
		Resources:   resources.NewState(start.Currency, start.Satisfaction, start.Reputation, resources.OpponentBounds()),
		Round:       round.New(),
		Inventory:   inventory.New(),
	}, nil
}

// ActorID returns the opponent's actor identity
func (o *Opponent) ActorID() shared.ActorID {
	return shared.MustNewActorID(o.ID)
}

// Normalize repairs a deserialized opponent
func (o *Opponent) Normalize(eventsPerRound int) {
	if o.Inventory == nil {
		o.Inventory = inventory.New()
	}
	o.Resources = resources.NewState(o.Resources.Currency, o.Resources.Satisfaction, o.Resources.Reputation, resources.OpponentBounds())
	o.Round.Normalize(eventsPerRound)
}

func (o *Opponent) String() string {
	return fmt.Sprintf("Opponent(%s, %s, skill=%.2f, %s)", o.Name, o.Personality, o.SkillLevel, o.Resources)
}
