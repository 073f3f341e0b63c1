package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerQueries "github.com/andrescamacho/bakerysim-go/internal/application/ledger/queries"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

type stubMediator struct {
	responses map[string]mediator.Response
}

func (m *stubMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	q, ok := request.(*ledgerQueries.GetProfitLossQuery)
	if !ok {
		return nil, errors.New("unexpected request")
	}
	resp, ok := m.responses[q.SessionID]
	if !ok {
		return nil, errors.New("no ledger")
	}
	return resp, nil
}

func (m *stubMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

func (m *stubMediator) Use(middleware mediator.Middleware) {}

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(Reset)
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "GetProfitLossQuery", extractCommandName(&ledgerQueries.GetProfitLossQuery{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestRequestKind(t *testing.T) {
	assert.Equal(t, "query", requestKind("GetProfitLossQuery"))
	assert.Equal(t, "command", requestKind("SelectRegionCommand"))
	assert.Equal(t, "other", requestKind("string"))
}

func TestPrometheusMiddleware(t *testing.T) {
	withRegistry(t)
	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	mw := PrometheusMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "done", nil }
	fail := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	resp, err := mw(context.Background(), &ledgerQueries.GetProfitLossQuery{}, ok)
	require.NoError(t, err)
	assert.Equal(t, "done", resp)
	_, err = mw(context.Background(), &ledgerQueries.GetProfitLossQuery{}, fail)
	assert.EqualError(t, err, "boom")

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requests.WithLabelValues("GetProfitLossQuery", "query", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requests.WithLabelValues("GetProfitLossQuery", "query", "error")))
}

func TestPrometheusMiddleware_CountsRejectedRequests(t *testing.T) {
	withRegistry(t)
	collector := NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	m := mediator.NewMediator()
	m.Use(PrometheusMiddleware(collector))
	m.Use(mediator.ValidationMiddleware())
	require.NoError(t, mediator.RegisterHandler[*ledgerQueries.GetProfitLossQuery](m, ledgerQueries.NewGetProfitLossHandler(nil)))

	_, err := m.Send(context.Background(), &ledgerQueries.GetProfitLossQuery{})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requests.WithLabelValues("GetProfitLossQuery", "query", "invalid")))
}

func TestPrometheusMiddleware_NilCollector(t *testing.T) {
	mw := PrometheusMiddleware(nil)
	resp, err := mw(context.Background(), "anything", func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestGlobalRecorders_NoopWhenDisabled(t *testing.T) {
	Reset()
	assert.False(t, IsEnabled())
	assert.NotPanics(t, func() {
		RecordTransaction("s1", "RENT_PAYMENT", "RENT", -26000)
		RecordEventFinalized("s1", 1000, 40)
		RecordRoundCompleted("s1", -500)
		RecordActorStanding("s1", "player", 1, 300000, 50)
	})
}

func TestGameCollector(t *testing.T) {
	withRegistry(t)
	collector := NewGameMetricsCollector()
	require.NoError(t, collector.Register())
	SetGlobalGameCollector(collector)

	RecordEventFinalized("s1", 10000, 400)
	RecordEventFinalized("s1", 8000, 320)
	RecordRoundCompleted("s1", -18000)
	RecordActorStanding("s1", "ai-golden-crust", 2, 250000, 61)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.eventsTotal.WithLabelValues("s1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.roundsTotal.WithLabelValues("s1")))
	assert.Equal(t, 250000.0, testutil.ToFloat64(collector.actorCurrency.WithLabelValues("s1", "ai-golden-crust")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.actorRank.WithLabelValues("s1", "ai-golden-crust")))
}

func TestFinancialCollector(t *testing.T) {
	withRegistry(t)
	m := &stubMediator{responses: map[string]mediator.Response{
		"s1": &ledgerQueries.GetProfitLossResponse{
			TotalRevenue:     19000,
			TotalExpenses:    37000,
			NetProfit:        -18000,
			RevenueBreakdown: map[string]int{"SALES_REVENUE": 18000, "EVENT_EFFECTS": 1000},
			ExpenseBreakdown: map[string]int{"RENT": 26000, "INVENTORY_COSTS": 11000},
		},
	}}
	collector := NewFinancialMetricsCollector(m, func() []string { return []string{"s1", "missing"} })
	require.NoError(t, collector.Register())
	SetGlobalFinancialCollector(collector)

	RecordTransaction("s1", "RENT_PAYMENT", "RENT", -26000)
	collector.UpdateProfitLoss(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.transactionsTotal.WithLabelValues("s1", "RENT_PAYMENT", "RENT")))
	assert.Equal(t, -18000.0, testutil.ToFloat64(collector.netProfit.WithLabelValues("s1")))
	assert.Equal(t, 26000.0, testutil.ToFloat64(collector.totalExpenses.WithLabelValues("s1", "RENT")))
	assert.Equal(t, 18000.0, testutil.ToFloat64(collector.totalRevenue.WithLabelValues("s1", "SALES_REVENUE")))
}

func TestServer(t *testing.T) {
	Reset()
	_, err := NewServer("localhost", 9090, "/metrics")
	assert.Error(t, err)

	withRegistry(t)
	collector := NewGameMetricsCollector()
	require.NoError(t, collector.Register())
	collector.RecordRoundCompleted("s1", 1200)

	srv, err := NewServer("localhost", 9191, "/metrics")
	require.NoError(t, err)
	assert.Equal(t, "localhost:9191", srv.Addr())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "bakerysim_game_rounds_completed_total"))
}
