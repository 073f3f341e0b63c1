package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GameMetricsCollector handles round, event and standings metrics
type GameMetricsCollector struct {
	// Event metrics
	eventsTotal      *prometheus.CounterVec
	eventRevenue     *prometheus.HistogramVec
	eventSalesVolume *prometheus.HistogramVec

	// Round metrics
	roundsTotal    *prometheus.CounterVec
	roundNetProfit *prometheus.HistogramVec

	// Standings
	actorCurrency   *prometheus.GaugeVec
	actorReputation *prometheus.GaugeVec
	actorRank       *prometheus.GaugeVec
}

// NewGameMetricsCollector creates a new game metrics collector
func NewGameMetricsCollector() *GameMetricsCollector {
	return &GameMetricsCollector{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_finalized_total",
				Help:      "Total number of finalized player events",
			},
			[]string{"session_id"},
		),

		eventRevenue: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "event_revenue",
				Help:      "Sales revenue per finalized event",
				Buckets:   []float64{0, 5000, 10000, 20000, 40000, 60000, 80000, 120000},
			},
			[]string{"session_id"},
		),

		eventSalesVolume: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "event_sales_volume",
				Help:      "Units sold per finalized event",
				Buckets:   []float64{0, 250, 500, 1000, 1500, 2000, 3000},
			},
			[]string{"session_id"},
		),

		roundsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rounds_completed_total",
				Help:      "Total number of completed rounds",
			},
			[]string{"session_id"},
		),

		roundNetProfit: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "round_net_profit",
				Help:      "Net profit per completed round",
				Buckets:   []float64{-100000, -50000, -10000, 0, 10000, 50000, 100000, 200000},
			},
			[]string{"session_id"},
		),

		actorCurrency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actor_currency",
				Help:      "Current currency of each actor",
			},
			[]string{"session_id", "actor_id"},
		),

		actorReputation: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actor_reputation",
				Help:      "Current reputation of each actor",
			},
			[]string{"session_id", "actor_id"},
		),

		actorRank: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actor_rank",
				Help:      "Leaderboard position of each actor (1 = first)",
			},
			[]string{"session_id", "actor_id"},
		),
	}
}

// Register registers all game metrics with the Prometheus registry
func (c *GameMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.eventsTotal,
		c.eventRevenue,
		c.eventSalesVolume,
		c.roundsTotal,
		c.roundNetProfit,
		c.actorCurrency,
		c.actorReputation,
		c.actorRank,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordEventFinalized records the sales outcome of one player event
func (c *GameMetricsCollector) RecordEventFinalized(sessionID string, revenue int, salesVolume int) {
	c.eventsTotal.WithLabelValues(sessionID).Inc()
	c.eventRevenue.WithLabelValues(sessionID).Observe(float64(revenue))
	c.eventSalesVolume.WithLabelValues(sessionID).Observe(float64(salesVolume))
}

// RecordRoundCompleted records a completed round and its net profit
func (c *GameMetricsCollector) RecordRoundCompleted(sessionID string, netProfit int) {
	c.roundsTotal.WithLabelValues(sessionID).Inc()
	c.roundNetProfit.WithLabelValues(sessionID).Observe(float64(netProfit))
}

// RecordActorStanding updates an actor's standing gauges
func (c *GameMetricsCollector) RecordActorStanding(sessionID string, actorID string, rank int, currency int, reputation int) {
	c.actorRank.WithLabelValues(sessionID, actorID).Set(float64(rank))
	c.actorCurrency.WithLabelValues(sessionID, actorID).Set(float64(currency))
	c.actorReputation.WithLabelValues(sessionID, actorID).Set(float64(reputation))
}
