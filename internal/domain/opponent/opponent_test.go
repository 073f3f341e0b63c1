package opponent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

var start = resources.State{Currency: 300000, Satisfaction: 50, Reputation: 50}

func TestNew_Validation(t *testing.T) {
	_, err := opponent.New("", "x", opponent.PersonalityBalanced, 0.5, start)
	assert.Error(t, err)

	_, err = opponent.New(shared.HumanActorID, "x", opponent.PersonalityBalanced, 0.5, start)
	assert.Error(t, err)

	_, err = opponent.New("ai-x", "x", opponent.Personality("reckless"), 0.5, start)
	assert.Error(t, err)

	_, err = opponent.New("ai-x", "x", opponent.PersonalityBalanced, 1.5, start)
	assert.Error(t, err)

	o, err := opponent.New("ai-x", "X", opponent.PersonalityBalanced, 0.5, start)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Round.CurrentRound)
	assert.True(t, o.Inventory.IsEmpty())
	assert.Equal(t, 300000, o.Resources.Currency)
}

func TestNewRoster(t *testing.T) {
	roster, err := opponent.NewRoster(3, start)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	assert.Equal(t, "ai-golden-crust", roster[0].ID)
	assert.Equal(t, opponent.PersonalityAggressive, roster[0].Personality)
	assert.Equal(t, "ai-morning-loaf", roster[1].ID)
	assert.Equal(t, "ai-grandmas-oven", roster[2].ID)
	assert.Equal(t, 0.7, roster[2].SkillLevel)

	empty, err := opponent.NewRoster(0, start)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = opponent.NewRoster(len(opponent.Templates)+1, start)
	assert.Error(t, err)
}

func TestNormalize_RestoresInventoryAndFloors(t *testing.T) {
	o := &opponent.Opponent{
		ID:        "ai-x",
		Resources: resources.State{Currency: -50, Satisfaction: -3, Reputation: -1},
	}
	o.Normalize(7)

	assert.NotNil(t, o.Inventory)
	assert.Equal(t, -50, o.Resources.Currency)
	assert.Equal(t, 0, o.Resources.Satisfaction)
	assert.Equal(t, 0, o.Resources.Reputation)
	assert.Equal(t, 1, o.Round.CurrentRound)
}

func TestPersonality(t *testing.T) {
	assert.InDelta(t, 0.9, opponent.PersonalityAggressive.SuccessProbability(1), 1e-9)
	assert.InDelta(t, 0.4, opponent.PersonalityBalanced.SuccessProbability(0), 1e-9)
	assert.InDelta(t, 0.58, opponent.PersonalityConservative.SuccessProbability(0.7), 1e-9)
	assert.InDelta(t, 0.7, opponent.PersonalityConservative.SuccessProbability(5), 1e-9, "skill is clamped")

	assert.Equal(t, 400, opponent.PersonalityAggressive.MaxStockBonus())
	assert.Equal(t, 300, opponent.PersonalityBalanced.MaxStockBonus())
	assert.Equal(t, 200, opponent.PersonalityConservative.MaxStockBonus())

	p, err := opponent.ParsePersonality(" Balanced ")
	require.NoError(t, err)
	assert.Equal(t, opponent.PersonalityBalanced, p)
	_, err = opponent.ParsePersonality("timid")
	assert.Error(t, err)
}

func TestDecide_CorrectPick(t *testing.T) {
	e := helpers.TestEvent("e1", event.SignalHot)
	choice := opponent.Decide(helpers.NewFixedRandom(0.1, 0), opponent.PersonalityBalanced, 0.5, e)

	assert.True(t, choice.Correct)
	assert.Equal(t, "a", choice.Option.ID)
	assert.Equal(t, resources.Effects{Currency: 1000, Satisfaction: 5, Reputation: 2}, choice.Effects)
}

func TestDecide_WrongPickAppliesHalfEffects(t *testing.T) {
	e := helpers.TestEvent("e1", event.SignalHot)
	choice := opponent.Decide(helpers.NewFixedRandom(0.99, 0), opponent.PersonalityBalanced, 0.5, e)

	assert.False(t, choice.Correct)
	assert.Equal(t, "b", choice.Option.ID)
	assert.Equal(t, resources.Effects{Currency: -1000, Satisfaction: -2}, choice.Effects)
}

func TestDecide_NoCorrectOptionUsesFullEffects(t *testing.T) {
	e := helpers.TestEvent("e1", event.SignalLow)
	for i := range e.Options {
		e.Options[i].Correct = false
	}
	choice := opponent.Decide(helpers.NewFixedRandom(0.99, 1), opponent.PersonalityAggressive, 1, e)

	assert.False(t, choice.Correct)
	assert.Equal(t, "b", choice.Option.ID)
	assert.Equal(t, e.Options[1].Effects, choice.Effects)
}

func TestDecide_SuccessRateMatchesProbability(t *testing.T) {
	e := helpers.TestEvent("e1", event.SignalNormal)
	rng := shared.NewRandom(20240601)

	const trials = 10000
	correct := 0
	for i := 0; i < trials; i++ {
		if opponent.Decide(rng, opponent.PersonalityAggressive, 1, e).Correct {
			correct++
		}
	}
	assert.InDelta(t, 0.9, float64(correct)/trials, 0.02)
}

func TestStats_Accuracy(t *testing.T) {
	assert.Equal(t, 0.0, opponent.Stats{}.Accuracy())
	assert.Equal(t, 0.75, opponent.Stats{EventsPlayed: 4, CorrectChoices: 3}.Accuracy())
}
