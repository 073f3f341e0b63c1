package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by the command collector
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// CommandMetricsCollector tracks every request that goes through the mediator
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewCommandMetricsCollector creates the request collectors. Game commands run
// in-process against the local database, so buckets stop at one second.
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a game command or query",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
			},
			[]string{"request", "kind"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "requests_total",
				Help:      "Game commands and queries handled, by outcome (ok, invalid, error)",
			},
			[]string{"request", "kind", "outcome"},
		),
	}
}

// Register adds the collectors to the registry; a nil registry disables them
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, collector := range []prometheus.Collector{c.duration, c.requests} {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Observe records one handled request
func (c *CommandMetricsCollector) Observe(request, outcome string, seconds float64) {
	kind := requestKind(request)
	c.duration.WithLabelValues(request, kind).Observe(seconds)
	c.requests.WithLabelValues(request, kind, outcome).Inc()
}

// requestKind tells commands from queries by the type name suffix
func requestKind(request string) string {
	switch {
	case strings.HasSuffix(request, "Query"):
		return "query"
	case strings.HasSuffix(request, "Command"):
		return "command"
	default:
		return "other"
	}
}
