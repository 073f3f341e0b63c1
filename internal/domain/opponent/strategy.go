package opponent

import (
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// Choice is an opponent's answer to one decision
type Choice struct {
	Option event.Option

	// Correct is true when the option picked is the one marked correct
	Correct bool

	// Effects are the direct effects actually applied (halved for a wrong pick)
	Effects resources.Effects
}

// Decide picks an option for an event.
//
// With probability personality.SuccessProbability(skill) the correct option is
// chosen at full effect; otherwise a random incorrect option at half effect.
// Events with no option marked correct fall back to a uniform pick at full effect.
func Decide(rng shared.Random, personality Personality, skill float64, e event.Event) Choice {
	correct, hasCorrect := e.CorrectOption()
	if !hasCorrect {
		o := e.Options[rng.Intn(len(e.Options))]
		return Choice{Option: o, Effects: o.Effects}
	}

	if rng.Float64() < personality.SuccessProbability(skill) {
		return Choice{Option: correct, Correct: true, Effects: correct.Effects}
	}

	wrong := e.IncorrectOptions()
	if len(wrong) == 0 {
		return Choice{Option: correct, Correct: true, Effects: correct.Effects}
	}
	o := wrong[rng.Intn(len(wrong))]
	return Choice{Option: o, Effects: o.Effects.Half()}
}
