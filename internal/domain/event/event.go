package event

import (
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
)

// OptionsPerEvent is the number of choices every decision presents
const OptionsPerEvent = 3

// Option is one choice of a decision
type Option struct {
	ID           string
	Text         string
	FeedbackText string
	Coefficient  float64
	Effects      resources.Effects
	Correct      bool
}

// Event is a scripted narrative event tied to a region type
type Event struct {
	ID              string
	Title           string
	Signal          EconomicSignal
	StoryText       string
	Description     string
	MarketingLesson string
	Options         []Option
}

// Validate checks the content contract: exactly 3 options, unique IDs, positive coefficients
func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: event id cannot be empty", ErrInvalidEvent)
	}
	if !e.Signal.IsValid() {
		return fmt.Errorf("%w: event %s has invalid economic signal %q", ErrInvalidEvent, e.ID, e.Signal)
	}
	if len(e.Options) != OptionsPerEvent {
		return fmt.Errorf("%w: event %s has %d options, want %d", ErrInvalidEvent, e.ID, len(e.Options), OptionsPerEvent)
	}
	seen := make(map[string]bool, len(e.Options))
	for _, o := range e.Options {
		if o.ID == "" || seen[o.ID] {
			return fmt.Errorf("%w: event %s has an empty or duplicate option id %q", ErrInvalidEvent, e.ID, o.ID)
		}
		if o.Coefficient <= 0 {
			return fmt.Errorf("%w: event %s option %s has non-positive coefficient", ErrInvalidEvent, e.ID, o.ID)
		}
		seen[o.ID] = true
	}
	return nil
}

// Option looks up an option by ID
func (e Event) Option(id string) (Option, bool) {
	for _, o := range e.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the first option marked correct
func (e Event) CorrectOption() (Option, bool) {
	for _, o := range e.Options {
		if o.Correct {
			return o, true
		}
	}
	return Option{}, false
}

// IncorrectOptions returns every option not marked correct
func (e Event) IncorrectOptions() []Option {
	out := make([]Option, 0, len(e.Options))
	for _, o := range e.Options {
		if !o.Correct {
			out = append(out, o)
		}
	}
	return out
}
