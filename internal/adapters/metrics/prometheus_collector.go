package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "bakerysim"
	// Subsystem for game engine metrics
	subsystem = "game"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalGameCollector is the singleton round/event metrics collector
	// Set by SetGlobalGameCollector() when metrics are enabled
	globalGameCollector GameMetricsRecorder

	// globalFinancialCollector is the singleton financial metrics collector
	// Set by SetGlobalFinancialCollector() when metrics are enabled
	globalFinancialCollector FinancialMetricsRecorder
)

// GameMetricsRecorder defines the interface for recording round and event metrics
// This interface is used by application code to record metrics
type GameMetricsRecorder interface {
	RecordEventFinalized(sessionID string, revenue int, salesVolume int)
	RecordRoundCompleted(sessionID string, netProfit int)
	RecordActorStanding(sessionID string, actorID string, rank int, currency int, reputation int)
}

// FinancialMetricsRecorder defines the interface for recording financial metrics
type FinancialMetricsRecorder interface {
	RecordTransaction(sessionID string, transactionType string, category string, amount int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and every global collector
func Reset() {
	Registry = nil
	globalGameCollector = nil
	globalFinancialCollector = nil
}

// SetGlobalGameCollector sets the global game metrics collector
func SetGlobalGameCollector(collector GameMetricsRecorder) {
	globalGameCollector = collector
}

// RecordEventFinalized records a finalized human event globally
func RecordEventFinalized(sessionID string, revenue int, salesVolume int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordEventFinalized(sessionID, revenue, salesVolume)
	}
}

// RecordRoundCompleted records a completed round globally
func RecordRoundCompleted(sessionID string, netProfit int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordRoundCompleted(sessionID, netProfit)
	}
}

// RecordActorStanding records an actor's leaderboard position globally
func RecordActorStanding(sessionID string, actorID string, rank int, currency int, reputation int) {
	if globalGameCollector != nil {
		globalGameCollector.RecordActorStanding(sessionID, actorID, rank, currency, reputation)
	}
}

// SetGlobalFinancialCollector sets the global financial metrics collector
func SetGlobalFinancialCollector(collector FinancialMetricsRecorder) {
	globalFinancialCollector = collector
}

// RecordTransaction records a ledger transaction globally
func RecordTransaction(sessionID string, transactionType string, category string, amount int) {
	if globalFinancialCollector != nil {
		globalFinancialCollector.RecordTransaction(sessionID, transactionType, category, amount)
	}
}
