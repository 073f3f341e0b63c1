package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ledgerQueries "github.com/andrescamacho/bakerysim-go/internal/application/ledger/queries"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// FinancialMetricsCollector handles ledger metrics (transactions, P&L)
type FinancialMetricsCollector struct {
	// Dependencies
	mediator   mediator.Mediator
	sessionIDs func() []string

	// Transaction metrics
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	// P&L metrics
	totalRevenue  *prometheus.GaugeVec
	totalExpenses *prometheus.GaugeVec
	netProfit     *prometheus.GaugeVec

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewFinancialMetricsCollector creates a new financial metrics collector.
// sessionIDs lists the sessions whose P&L is polled; it may be nil.
func NewFinancialMetricsCollector(m mediator.Mediator, sessionIDs func() []string) *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		mediator:   m,
		sessionIDs: sessionIDs,

		// Transaction count by type/category
		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of ledger transactions by type and category",
			},
			[]string{"session_id", "type", "category"},
		),

		// Transaction amount distribution
		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Transaction amount distribution",
				Buckets:   []float64{100, 500, 1000, 5000, 10000, 25000, 50000, 100000},
			},
			[]string{"session_id", "type", "category"},
		),

		totalRevenue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_revenue",
				Help:      "Total revenue by category",
			},
			[]string{"session_id", "category"},
		),

		totalExpenses: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_expenses",
				Help:      "Total expenses by category",
			},
			[]string{"session_id", "category"},
		),

		netProfit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "net_profit",
				Help:      "Net profit (revenue - expenses)",
			},
			[]string{"session_id"},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.transactionsTotal,
		c.transactionAmount,
		c.totalRevenue,
		c.totalExpenses,
		c.netProfit,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the P&L polling goroutine
func (c *FinancialMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollProfitLoss(interval)
}

// Stop gracefully stops the financial metrics collector
func (c *FinancialMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

// pollProfitLoss polls P&L data periodically
func (c *FinancialMetricsCollector) pollProfitLoss(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do initial poll immediately
	c.UpdateProfitLoss(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.UpdateProfitLoss(c.ctx)
		}
	}
}

// UpdateProfitLoss fetches the whole-game P&L of every tracked session
func (c *FinancialMetricsCollector) UpdateProfitLoss(ctx context.Context) {
	if c.mediator == nil || c.sessionIDs == nil {
		return
	}

	for _, sessionID := range c.sessionIDs() {
		response, err := c.mediator.Send(ctx, &ledgerQueries.GetProfitLossQuery{SessionID: sessionID})
		if err != nil {
			log.Printf("Failed to fetch profit/loss for session %s: %v", sessionID, err)
			continue
		}

		plResponse, ok := response.(*ledgerQueries.GetProfitLossResponse)
		if !ok {
			log.Printf("Unexpected response type for P&L query: %T", response)
			continue
		}

		for category, amount := range plResponse.RevenueBreakdown {
			c.totalRevenue.WithLabelValues(sessionID, category).Set(float64(amount))
		}
		for category, amount := range plResponse.ExpenseBreakdown {
			c.totalExpenses.WithLabelValues(sessionID, category).Set(float64(amount))
		}
		c.netProfit.WithLabelValues(sessionID).Set(float64(plResponse.NetProfit))
	}
}

// RecordTransaction records a ledger transaction
func (c *FinancialMetricsCollector) RecordTransaction(
	sessionID string,
	transactionType string,
	category string,
	amount int,
) {
	c.transactionsTotal.WithLabelValues(sessionID, transactionType, category).Inc()

	// Record transaction amount (use absolute value for histogram)
	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	c.transactionAmount.WithLabelValues(sessionID, transactionType, category).Observe(float64(absAmount))
}
