package game_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
	"github.com/andrescamacho/bakerysim-go/test/helpers"
)

type capturedLog struct {
	level   string
	message string
}

type captureLogger struct {
	lines []capturedLog
}

func (c *captureLogger) Log(level, message string, metadata map[string]interface{}) {
	c.lines = append(c.lines, capturedLog{level: level, message: message})
}

func (c *captureLogger) warnings() int {
	n := 0
	for _, l := range c.lines {
		if l.level == logging.LevelWarning {
			n++
		}
	}
	return n
}

type serviceFixture struct {
	store   *persistence.MemoryStateStore
	content game.Content
	clock   *shared.MockClock
	service *game.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		store:   persistence.NewMemoryStateStore(),
		content: helpers.TestContent(t, 2),
		clock:   shared.NewMockClock(startTime),
	}
	f.service = f.newService()
	return f
}

// newService builds a service over the same store, as a restarted process would
func (f *serviceFixture) newService() *game.Service {
	settings := smallSettings()
	settings.OpponentCount = 2
	settings.Seed = 5
	return game.NewService(game.NewRepository(f.store, f.content, settings, f.clock), nil, f.clock)
}

func (f *serviceFixture) setRecord(t *testing.T, id, record string, value interface{}) {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, f.store.Set(context.Background(), game.RecordKey(id, record), data))
}

func selectRegion(s *game.Session) error {
	_, err := s.SelectRegion(helpers.ResidentialRegion, "中正里")
	return err
}

func stock(s *game.Session) error {
	_, err := s.PurchaseStock(map[string]int{"croissant": 100})
	return err
}

func TestService_StartAndReload(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	started, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	assert.Len(t, started.Opponents, 2)

	_, err = f.service.Mutate(ctx, "s1", selectRegion)
	require.NoError(t, err)

	loaded, err := f.newService().Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Mei", loaded.PlayerName)
	assert.Equal(t, 274000, loaded.Resources.Currency)
	assert.Equal(t, round.SignalStockingRequired, loaded.Status().Signal)
	assert.False(t, loaded.Recovered())
	for _, o := range loaded.Opponents {
		assert.True(t, o.Round.HasRegion(), o.ID)
	}
}

func TestService_StartExisting(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", selectRegion)
	require.NoError(t, err)

	_, err = f.service.Start(ctx, "s1", "Mei", false)
	assert.ErrorContains(t, err, "already exists")

	reset, err := f.service.Reset(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 300000, reset.Resources.Currency)
	assert.Equal(t, "Mei", reset.PlayerName)

	loaded, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, loaded.Round.HasRegion())
}

func TestService_LoadMissing(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.service.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestService_FailedOperationIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)

	_, err = f.service.Mutate(ctx, "s1", func(s *game.Session) error {
		_, err := s.SelectRegion("工業區", "港口")
		return err
	})
	assert.Error(t, err)

	_, err = f.service.Mutate(ctx, "s1", stock)
	assert.ErrorIs(t, err, round.ErrRegionSelectionRequired)

	loaded, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 300000, loaded.Resources.Currency)
	assert.Equal(t, round.SignalRegionSelectionRequired, loaded.Status().Signal)
}

func TestService_CorruptRecordFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	require.NoError(t, f.store.Set(ctx, game.RecordKey("s1", game.RecordResources), []byte("{not json")))
	require.NoError(t, f.store.Set(ctx, game.RecordKey("s1", game.RecordOpponents), []byte("[")))

	logger := &captureLogger{}
	loaded, err := f.service.Load(logging.WithLogger(ctx, logger), "s1")
	require.NoError(t, err)

	assert.True(t, loaded.Recovered())
	assert.Equal(t, 300000, loaded.Resources.Currency)
	assert.Len(t, loaded.Opponents, 2)
	assert.Equal(t, 2, logger.warnings())

	// the repaired records were written back
	again, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, again.Recovered())
}

func TestService_EmptyOpponentEntryRebuildsRoster(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"null entry", `[null]`},
		{"null after valid entry", `[{"id":"ai-1","name":"Rival","personality":"balanced","skill_level":0.5},null]`},
		{"entry without id", `[{"name":"Nobody"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newServiceFixture(t)
			_, err := f.service.Start(ctx, "s1", "Mei", false)
			require.NoError(t, err)
			require.NoError(t, f.store.Set(ctx, game.RecordKey("s1", game.RecordOpponents), []byte(tt.record)))

			logger := &captureLogger{}
			var loaded *game.Session
			require.NotPanics(t, func() {
				loaded, err = f.service.Load(logging.WithLogger(ctx, logger), "s1")
			})
			require.NoError(t, err)

			assert.True(t, loaded.Recovered())
			require.Len(t, loaded.Opponents, 2)
			for _, o := range loaded.Opponents {
				require.NotNil(t, o)
				assert.NotEmpty(t, o.ID)
			}
			assert.Equal(t, 1, logger.warnings())
			assert.Len(t, loaded.Leaderboard(), 3)
		})
	}
}

func TestService_LostCoefficientIsRestoredFromRegionTable(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", selectRegion)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", stock)
	require.NoError(t, err)

	before, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	lost := before.Round
	lost.Coefficient = 0
	f.setRecord(t, "s1", game.RecordRoundState, lost)
	withRegion := 0
	for _, o := range before.Opponents {
		if o.Round.HasRegion() {
			withRegion++
		}
		o.Round.Coefficient = 0
	}
	f.setRecord(t, "s1", game.RecordOpponents, before.Opponents)

	logger := &captureLogger{}
	loaded, err := f.service.Load(logging.WithLogger(ctx, logger), "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Recovered())
	assert.Equal(t, 1.0, loaded.Round.Coefficient)
	assert.Equal(t, 1+withRegion, logger.warnings())
	for _, o := range loaded.Opponents {
		if !o.Round.HasRegion() {
			continue
		}
		want, err := f.content.Regions.Coefficient(o.Round.RegionType, o.Round.District)
		require.NoError(t, err)
		assert.Equal(t, want, o.Round.Coefficient, o.ID)
	}

	var result game.FeedbackResult
	_, err = f.service.Mutate(ctx, "s1", func(s *game.Session) error {
		if _, err := s.AdvanceDialogue(); err != nil {
			return err
		}
		if _, err := s.AdvanceDialogue(); err != nil {
			return err
		}
		if _, err := s.SelectOption("a"); err != nil {
			return err
		}
		result, err = s.ConfirmFeedback()
		return err
	})
	require.NoError(t, err)
	// lowest demand at these multipliers still exceeds the 100 croissants held
	assert.Equal(t, 100, result.Sales.TotalSalesVolume)
}

func TestService_OpponentOutOfStepIsRealigned(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	started, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)

	started.Opponents[0].Round = round.State{CurrentRound: 4, HasStocked: true}
	f.setRecord(t, "s1", game.RecordOpponents, started.Opponents)

	logger := &captureLogger{}
	loaded, err := f.service.Load(logging.WithLogger(ctx, logger), "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Recovered())
	assert.Equal(t, 1, logger.warnings())
	for _, o := range loaded.Opponents {
		assert.Equal(t, round.State{CurrentRound: loaded.Round.CurrentRound}, o.Round, o.ID)
	}

	again, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, again.Recovered())
}

func TestService_ImpossibleRoundStateIsNormalized(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	f.setRecord(t, "s1", game.RecordRoundState, round.State{CurrentRound: 0, HasStocked: true, EventsCompleted: 1})

	loaded, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Recovered())
	assert.Equal(t, round.State{CurrentRound: 1}, loaded.Round)
}

func TestService_StuckRoundGetsExactlyOneReport(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", selectRegion)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", stock)
	require.NoError(t, err)

	// counters claim the round is done; the aggregator never saw it
	f.setRecord(t, "s1", game.RecordRoundState, round.State{
		CurrentRound: 1, RegionType: helpers.ResidentialRegion, District: "中正里", Coefficient: 1,
		HasStocked: true, EventsCompleted: 2,
	})

	loaded, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Recovered())
	assert.Equal(t, 1, loaded.History.Len())
	assert.Equal(t, round.SignalRoundComplete, loaded.Status().Signal)

	again, err := f.service.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.History.Len())
}

func TestService_DriftedFlowIsRebuilt(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	_, err := f.service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", selectRegion)
	require.NoError(t, err)
	_, err = f.service.Mutate(ctx, "s1", stock)
	require.NoError(t, err)

	f.setRecord(t, "s1", game.RecordEventFlow, event.Flow{
		Stage: event.StageFeedback, RegionType: helpers.CommercialRegion, EventIndex: 1, EventID: "x", SelectedOptionID: "a",
	})

	s, err := f.service.Mutate(ctx, "s1", func(s *game.Session) error {
		_, err := s.CurrentEvent()
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, s.Flow)
	assert.Equal(t, event.StageEconomicSignalReveal, s.Flow.Stage)
	assert.Equal(t, helpers.ResidentialRegion+"-01", s.Flow.EventID)

	// confirming now must not apply a stale decision
	_, err = f.service.Mutate(ctx, "s1", func(s *game.Session) error {
		_, err := s.ConfirmFeedback()
		return err
	})
	assert.ErrorIs(t, err, game.ErrDecisionPending)
}

func TestService_ListSessions(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	for _, id := range []string{"b", "a", "c"} {
		_, err := f.service.Start(ctx, id, "Mei", false)
		require.NoError(t, err)
	}

	ids, err := f.service.Repository().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, f.service.Repository().Delete(ctx, "b"))
	ids, err = f.service.Repository().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestService_RecordsLedgerTransactions(t *testing.T) {
	ctx := context.Background()
	clock := shared.NewMockClock(startTime)
	settings := smallSettings()
	repos := helpers.NewTestRepositories(helpers.NewTestDB(t), helpers.TestContent(t, 2), settings, clock)

	_, err := repos.Service.Start(ctx, "s1", "Mei", false)
	require.NoError(t, err)
	_, err = repos.Service.Mutate(ctx, "s1", selectRegion)
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = repos.Service.Mutate(ctx, "s1", stock)
	require.NoError(t, err)

	txs, err := repos.TransactionRepo.FindBySession(ctx, "s1", ledger.QueryOptions{OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.TransactionTypeRentPayment, txs[0].TransactionType())
	assert.Equal(t, 274000, txs[0].BalanceAfter())
	assert.Equal(t, -900, txs[1].Amount())
	assert.Equal(t, 273100, txs[1].BalanceAfter())

	// a restart wipes the ledger of the session
	_, err = repos.Service.Start(ctx, "s1", "Mei", true)
	require.NoError(t, err)
	count, err := repos.TransactionRepo.CountBySession(ctx, "s1", ledger.QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
