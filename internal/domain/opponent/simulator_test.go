package opponent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

const eventsPerRound = 3

func newSimulator(t *testing.T, rng shared.Random) *opponent.Simulator {
	t.Helper()
	c := helpers.TestContent(t, eventsPerRound)
	return opponent.NewSimulator(c.Regions, c.Catalog, c.Events, rng, eventsPerRound)
}

func newOpponent(t *testing.T, p opponent.Personality, skill float64) *opponent.Opponent {
	t.Helper()
	o, err := opponent.New("ai-test", "Test", p, skill, start)
	require.NoError(t, err)
	return o
}

func TestSelectRegion_ByPersonality(t *testing.T) {
	tests := []struct {
		personality opponent.Personality
		region      string
		district    string
		rent        int
	}{
		{opponent.PersonalityAggressive, helpers.CommercialRegion, "站前", 35000},
		{opponent.PersonalityBalanced, helpers.CommercialRegion, "站前", 35000},
		{opponent.PersonalityConservative, helpers.ResidentialRegion, "中正里", 26000},
	}
	for _, tt := range tests {
		t.Run(string(tt.personality), func(t *testing.T) {
			sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
			o := newOpponent(t, tt.personality, 0.5)

			decision, err := sim.SelectRegion(o)
			require.NoError(t, err)

			assert.Equal(t, tt.region, decision.RegionType)
			assert.Equal(t, tt.district, decision.District)
			assert.Equal(t, tt.rent, decision.Rent)
			assert.Equal(t, 300000-tt.rent, o.Resources.Currency)
			assert.Equal(t, round.SignalStockingRequired, o.Round.Signal())
		})
	}
}

func TestSelectRegion_FallsBackToCheapestAffordable(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityAggressive, 0.5)
	o.Resources.Currency = 30000

	decision, err := sim.SelectRegion(o)
	require.NoError(t, err)
	assert.Equal(t, helpers.ResidentialRegion, decision.RegionType)
	assert.Equal(t, 4000, o.Resources.Currency)
}

func TestSelectRegion_SitsOutWhenBroke(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	o.Resources.Currency = 1000

	decision, err := sim.SelectRegion(o)
	require.NoError(t, err)
	assert.True(t, decision.SatOut)
	assert.Equal(t, 1, o.Stats.RoundsSkipped)
	assert.Equal(t, 1000, o.Resources.Currency)

	outcome, err := sim.PlayEvent(o)
	require.NoError(t, err)
	assert.True(t, outcome.Skipped)
}

func TestSelectRegion_Twice(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)

	_, err = sim.SelectRegion(o)
	assert.ErrorIs(t, err, round.ErrRegionAlreadySelected)
}

func TestStock_BaseQuantityPlusBonus(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)

	decision, err := sim.Stock(o)
	require.NoError(t, err)

	// 1400 × (9 + 12)
	assert.Equal(t, 29400, decision.Cost)
	assert.False(t, decision.ScaledDown)
	assert.Equal(t, 1400, o.Inventory.Quantity("croissant"))
	assert.Equal(t, 1400, o.Inventory.Quantity("toast"))
	assert.Equal(t, 300000-26000-29400, o.Resources.Currency)
	assert.True(t, o.Round.HasStocked)
}

func TestStock_BonusUpperBound(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 1000))
	o := newOpponent(t, opponent.PersonalityAggressive, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)

	_, err = sim.Stock(o)
	require.NoError(t, err)
	assert.Equal(t, 1800, o.Inventory.Quantity("croissant"))
}

func TestStock_ScalesDownWhenUnaffordable(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)
	o.Resources.Currency = 14700

	decision, err := sim.Stock(o)
	require.NoError(t, err)

	assert.True(t, decision.ScaledDown)
	assert.Equal(t, 700, decision.Quantities["croissant"])
	assert.Equal(t, 700, decision.Quantities["toast"])
	assert.Equal(t, 14700, decision.Cost)
	assert.Equal(t, 0, o.Resources.Currency)
}

func TestStock_RequiresRegion(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)

	_, err := sim.Stock(o)
	assert.ErrorIs(t, err, round.ErrRegionSelectionRequired)
}

func TestPlayEvent_PartialSales(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)
	_, err = sim.Stock(o)
	require.NoError(t, err)

	outcome, err := sim.PlayEvent(o)
	require.NoError(t, err)

	assert.True(t, outcome.Choice.Correct)
	assert.Equal(t, helpers.ResidentialRegion+"-01", outcome.EventID)
	assert.Equal(t, opponent.MinConsumptionRate, outcome.Consumption)

	// demand 200, capped at 10% of 1400 held
	assert.Equal(t, 280, outcome.Sales.TotalSalesVolume)
	assert.Equal(t, 140*25+140*30, outcome.Sales.TotalRevenue)
	assert.Equal(t, 1260, o.Inventory.Quantity("croissant"))

	assert.Equal(t, 300000-26000-29400+1000+7700, o.Resources.Currency)
	assert.Equal(t, 55, o.Resources.Satisfaction)
	assert.Equal(t, 52, o.Resources.Reputation)
	assert.Equal(t, 1, o.Stats.EventsPlayed)
	assert.Equal(t, 1, o.Stats.CorrectChoices)
}

func TestPlayEvent_RoundLimit(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)
	_, err = sim.Stock(o)
	require.NoError(t, err)

	for i := 0; i < eventsPerRound; i++ {
		_, err := sim.PlayEvent(o)
		require.NoError(t, err)
	}
	_, err = sim.PlayEvent(o)
	assert.ErrorIs(t, err, round.ErrRoundComplete)
}

func TestCompleteRound_KeepsInventory(t *testing.T) {
	sim := newSimulator(t, helpers.NewFixedRandom(0, 0))
	o := newOpponent(t, opponent.PersonalityConservative, 0.5)
	_, err := sim.SelectRegion(o)
	require.NoError(t, err)
	_, err = sim.Stock(o)
	require.NoError(t, err)
	_, err = sim.PlayEvent(o)
	require.NoError(t, err)

	sim.CompleteRound(o)

	assert.Equal(t, 2, o.Round.CurrentRound)
	assert.Equal(t, 1, o.Stats.RoundsPlayed)
	assert.False(t, o.Round.HasStocked)
	assert.Equal(t, round.SignalRegionSelectionRequired, o.Round.Signal())
	assert.Equal(t, 1260, o.Inventory.Quantity("croissant"))
}
