package resources

import (
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/pkg/utils"
)

const (
	// SatisfactionMin is the lower bound for every actor's satisfaction
	SatisfactionMin = 0

	// SatisfactionMax is the upper bound for the human player's satisfaction
	SatisfactionMax = 100

	// ReputationMin is the floor for every actor's reputation
	ReputationMin = 0
)

// Bounds describes how an actor's satisfaction is clamped
type Bounds struct {
	// CapSatisfaction enables the upper bound of SatisfactionMax
	CapSatisfaction bool
}

// HumanBounds keeps satisfaction within [0, 100]
func HumanBounds() Bounds {
	return Bounds{CapSatisfaction: true}
}

// OpponentBounds floors satisfaction at 0 but leaves it unbounded above
func OpponentBounds() Bounds {
	return Bounds{CapSatisfaction: false}
}

// State tracks the three currencies of one actor
type State struct {
	Currency     int `json:"currency"`
	Satisfaction int `json:"satisfaction"`
	Reputation   int `json:"reputation"`
}

// NewState creates a resource state clamped to the given bounds
func NewState(currency, satisfaction, reputation int, bounds Bounds) State {
	s := State{Currency: currency, Satisfaction: satisfaction, Reputation: reputation}
	s.clamp(bounds)
	return s
}

// Delta is the change actually applied after clamping
type Delta struct {
	Currency     int
	Satisfaction int
	Reputation   int
}

// Apply adds effects additively and clamps to bounds.
// Currency is not clamped; it can go negative through event effects.
func (s *State) Apply(e Effects, bounds Bounds) Delta {
	before := *s
	s.Currency += e.Currency
	s.Satisfaction += e.Satisfaction
	s.Reputation += e.Reputation
	s.clamp(bounds)
	return Delta{
		Currency:     s.Currency - before.Currency,
		Satisfaction: s.Satisfaction - before.Satisfaction,
		Reputation:   s.Reputation - before.Reputation,
	}
}

func (s *State) clamp(bounds Bounds) {
	if bounds.CapSatisfaction {
		s.Satisfaction = utils.Clamp(s.Satisfaction, SatisfactionMin, SatisfactionMax)
	} else {
		s.Satisfaction = utils.Max(s.Satisfaction, SatisfactionMin)
	}
	s.Reputation = utils.Max(s.Reputation, ReputationMin)
}

// CanAfford reports whether the actor holds at least amount currency
func (s State) CanAfford(amount int) bool {
	return s.Currency >= amount
}

// Debit removes currency for a payment. Insufficient funds leave the state untouched.
func (s *State) Debit(purpose shared.FundsPurpose, amount int) error {
	if amount < 0 {
		return fmt.Errorf("debit amount cannot be negative: %d", amount)
	}
	if !s.CanAfford(amount) {
		return shared.NewInsufficientFundsError(purpose, amount, s.Currency)
	}
	s.Currency -= amount
	return nil
}

// Credit adds currency (sales revenue)
func (s *State) Credit(amount int) {
	if amount > 0 {
		s.Currency += amount
	}
}

func (s State) String() string {
	return fmt.Sprintf("Resources(currency=%d, satisfaction=%d, reputation=%d)",
		s.Currency, s.Satisfaction, s.Reputation)
}
