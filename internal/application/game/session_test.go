package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

var startTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func smallSettings() game.Settings {
	s := game.DefaultSettings()
	s.EventsPerRound = 2
	s.OpponentCount = 0
	return s
}

func newSmallSession(t *testing.T, settings game.Settings) *game.Session {
	t.Helper()
	s, err := game.NewSession("s1", "Mei", helpers.TestContent(t, 2), settings, helpers.NewFixedRandom(0.5, 0), shared.NewMockClock(startTime))
	require.NoError(t, err)
	return s
}

// playToFeedback walks the current event from its reveal to the chosen option
func playToFeedback(t *testing.T, s *game.Session, optionID string) {
	t.Helper()
	view, err := s.CurrentEvent()
	require.NoError(t, err)
	require.Equal(t, event.StageEconomicSignalReveal, view.Flow.Stage)

	_, err = s.AdvanceDialogue()
	require.NoError(t, err)
	view, err = s.AdvanceDialogue()
	require.NoError(t, err)
	require.Equal(t, event.StageDecision, view.Flow.Stage)

	view, err = s.SelectOption(optionID)
	require.NoError(t, err)
	require.Equal(t, event.StageFeedback, view.Flow.Stage)
}

func TestNewSession(t *testing.T) {
	s, err := game.NewSession("s1", "Mei", helpers.TestContent(t, 2), game.DefaultSettings(), helpers.NewFixedRandom(0.5, 0), shared.NewMockClock(startTime))
	require.NoError(t, err)

	assert.Equal(t, 300000, s.Resources.Currency)
	assert.Equal(t, 50, s.Resources.Satisfaction)
	assert.Equal(t, 50, s.Resources.Reputation)
	assert.Len(t, s.Opponents, 3)
	assert.Equal(t, round.SignalRegionSelectionRequired, s.Status().Signal)
	assert.Equal(t, startTime, s.CreatedAt)

	_, err = game.NewSession("", "Mei", helpers.TestContent(t, 2), game.DefaultSettings(), nil, shared.NewMockClock(startTime))
	assert.Error(t, err)
}

func TestSession_FullRound(t *testing.T) {
	s := newSmallSession(t, smallSettings())

	selection, err := s.SelectRegion(helpers.ResidentialRegion, "中正里")
	require.NoError(t, err)
	assert.Equal(t, 26000, selection.Rent)
	assert.Equal(t, 274000, s.Resources.Currency)

	purchase, err := s.PurchaseStock(map[string]int{"croissant": 1000})
	require.NoError(t, err)
	assert.Equal(t, 9000, purchase.Cost)
	assert.Equal(t, 265000, s.Resources.Currency)
	assert.Equal(t, round.SignalEventInProgress, s.Status().Signal)

	// event 1: correct option, demand 400 at full multiplier
	playToFeedback(t, s, "a")
	result, err := s.ConfirmFeedback()
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.RoundComplete)
	assert.Equal(t, 400, result.Sales.TotalSalesVolume)
	assert.Equal(t, 10000, result.Sales.TotalRevenue)
	assert.Equal(t, 265000+1000+10000, s.Resources.Currency)
	assert.Equal(t, 55, s.Resources.Satisfaction)
	assert.Equal(t, 52, s.Resources.Reputation)

	again, err := s.ConfirmFeedback()
	require.NoError(t, err)
	assert.False(t, again.Applied, "second confirm is a no-op")
	assert.Equal(t, 276000, s.Resources.Currency)

	// event 2: option b sells at 0.8 and costs 2000
	playToFeedback(t, s, "b")
	result, err = s.ConfirmFeedback()
	require.NoError(t, err)
	assert.True(t, result.RoundComplete)
	require.NotNil(t, result.Report)
	assert.Equal(t, 320, result.Sales.TotalSalesVolume)
	assert.Equal(t, 276000-2000+8000, s.Resources.Currency)

	r := result.Report
	assert.Equal(t, 1, r.RoundNumber)
	assert.Equal(t, 26000, r.RentPaid)
	assert.Equal(t, 9000, r.StockingCost)
	assert.Equal(t, 10000+1000+8000, r.TotalRevenue)
	assert.Equal(t, 9000+2000, r.TotalCost)
	assert.Equal(t, 720, r.TotalSalesVolume)
	assert.Equal(t, -18000, r.NetProfit())
	assert.Len(t, r.Events, 2)

	status := s.Status()
	assert.Equal(t, 2, status.Round)
	assert.Equal(t, round.SignalRoundComplete, status.Signal)
	assert.Empty(t, status.Inventory)
	require.NotNil(t, status.LatestReport)
	assert.Equal(t, 1, status.LatestReport.RoundNumber)

	acknowledged, err := s.AcknowledgeReport()
	require.NoError(t, err)
	assert.Equal(t, 1, acknowledged.RoundNumber)
	assert.Equal(t, round.SignalRegionSelectionRequired, s.Status().Signal)

	_, err = s.AcknowledgeReport()
	assert.ErrorIs(t, err, game.ErrNoReportPending)

	postings := s.TakePostings()
	var types []ledger.TransactionType
	for _, p := range postings {
		types = append(types, p.Type)
		assert.Equal(t, p.BalanceBefore+p.Amount, p.BalanceAfter)
	}
	assert.Equal(t, []ledger.TransactionType{
		ledger.TransactionTypeRentPayment,
		ledger.TransactionTypeStockPurchase,
		ledger.TransactionTypeEventEffect,
		ledger.TransactionTypeSalesRevenue,
		ledger.TransactionTypeEventEffect,
		ledger.TransactionTypeSalesRevenue,
	}, types)
	assert.Empty(t, s.TakePostings())
}

func TestSession_Gates(t *testing.T) {
	s := newSmallSession(t, smallSettings())

	_, err := s.PurchaseStock(map[string]int{"croissant": 10})
	assert.ErrorIs(t, err, round.ErrRegionSelectionRequired)

	_, err = s.CurrentEvent()
	assert.ErrorIs(t, err, round.ErrRegionSelectionRequired)

	_, err = s.SelectRegion(helpers.ResidentialRegion, "中正里")
	require.NoError(t, err)

	_, err = s.CurrentEvent()
	assert.ErrorIs(t, err, round.ErrStockingRequired)

	_, err = s.SelectRegion(helpers.CommercialRegion, "站前")
	assert.ErrorIs(t, err, round.ErrRegionAlreadySelected)

	_, err = s.PurchaseStock(map[string]int{})
	assert.ErrorIs(t, err, game.ErrEmptyOrder)

	_, err = s.PurchaseStock(map[string]int{"baguette": 10})
	assert.Error(t, err)
	assert.False(t, s.Round.HasStocked)
}

func TestSession_ConfirmBeforeDecision(t *testing.T) {
	s := newSmallSession(t, smallSettings())
	_, err := s.SelectRegion(helpers.ResidentialRegion, "中正里")
	require.NoError(t, err)
	_, err = s.PurchaseStock(map[string]int{"croissant": 10})
	require.NoError(t, err)

	_, err = s.ConfirmFeedback()
	assert.ErrorIs(t, err, game.ErrDecisionPending)
	assert.Equal(t, 0, s.Round.EventsCompleted)
}

func TestSession_UnknownOption(t *testing.T) {
	s := newSmallSession(t, smallSettings())
	_, err := s.SelectRegion(helpers.ResidentialRegion, "中正里")
	require.NoError(t, err)
	_, err = s.PurchaseStock(map[string]int{"croissant": 10})
	require.NoError(t, err)
	_, err = s.AdvanceDialogue()
	require.NoError(t, err)
	_, err = s.AdvanceDialogue()
	require.NoError(t, err)

	_, err = s.SelectOption("z")
	assert.ErrorIs(t, err, event.ErrUnknownOption)
}

func TestSession_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	settings := smallSettings()
	settings.StartingCurrency = 30000
	s := newSmallSession(t, settings)

	_, err := s.SelectRegion(helpers.CommercialRegion, "站前")
	var funds *shared.InsufficientFundsError
	require.ErrorAs(t, err, &funds)
	assert.Equal(t, shared.FundsPurposeRent, funds.Purpose)
	assert.Equal(t, 5000, funds.Shortfall())
	assert.Equal(t, 30000, s.Resources.Currency)
	assert.False(t, s.Round.HasRegion())

	_, err = s.SelectRegion(helpers.ResidentialRegion, "中正里")
	require.NoError(t, err)

	_, err = s.PurchaseStock(map[string]int{"croissant": 1000})
	require.ErrorAs(t, err, &funds)
	assert.Equal(t, shared.FundsPurposeStock, funds.Purpose)
	assert.Equal(t, 4000, s.Resources.Currency)
	assert.True(t, s.Inventory.IsEmpty())
	assert.Len(t, s.TakePostings(), 1, "only the rent was posted")
}

func TestSession_UnknownRegion(t *testing.T) {
	s := newSmallSession(t, smallSettings())
	_, err := s.SelectRegion("工業區", "港口")
	assert.Error(t, err)
	assert.Equal(t, 300000, s.Resources.Currency)
}

func TestSession_EnsureReportConsistencyRepairsStuckRound(t *testing.T) {
	s := newSmallSession(t, smallSettings())
	_, err := s.SelectRegion(helpers.ResidentialRegion, "中正里")
	require.NoError(t, err)
	_, err = s.PurchaseStock(map[string]int{"croissant": 10})
	require.NoError(t, err)

	// the counters say the round is over but no report was generated
	s.Round.EventsCompleted = 2
	s.EnsureReportConsistency()

	assert.True(t, s.Recovered())
	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, 2, s.Round.CurrentRound)
	assert.NotEmpty(t, s.TakeNotes())

	s.EnsureReportConsistency()
	assert.Equal(t, 1, s.History.Len(), "repair runs once")
}

func TestSession_EmbeddedContentRound(t *testing.T) {
	content := helpers.EmbeddedContent(t)
	s, err := game.NewSession("embedded", "Mei", content, game.DefaultSettings(), shared.NewRandom(7), shared.NewMockClock(startTime))
	require.NoError(t, err)

	_, err = s.SelectRegion("住宅區", "中正里")
	require.NoError(t, err)
	assert.Equal(t, 274000, s.Resources.Currency)

	_, err = s.PurchaseStock(map[string]int{"croissant": 1400})
	require.NoError(t, err)
	assert.Equal(t, 261400, s.Resources.Currency)

	for i := 0; i < 7; i++ {
		view, err := s.CurrentEvent()
		require.NoError(t, err)
		correct, ok := view.Event.CorrectOption()
		require.True(t, ok)

		playToFeedback(t, s, correct.ID)
		result, err := s.ConfirmFeedback()
		require.NoError(t, err)
		assert.Equal(t, i == 6, result.RoundComplete)
	}

	assert.Equal(t, 1, s.History.Len())
	assert.Equal(t, 2, s.Round.CurrentRound)
	for _, o := range s.Opponents {
		assert.Equal(t, 7, o.Stats.EventsPlayed, o.ID)
		assert.Equal(t, 2, o.Round.CurrentRound, o.ID)
	}
	assert.Len(t, s.Leaderboard(), 4)
}
