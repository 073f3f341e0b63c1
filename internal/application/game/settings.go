package game

import (
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
)

// Settings are the tunable starting values of a game
type Settings struct {
	StartingCurrency     int
	StartingSatisfaction int
	StartingReputation   int
	EventsPerRound       int
	OpponentCount        int

	// Seed makes sessions deterministic when non-zero
	Seed int64
}

// DefaultSettings returns the standard game setup
func DefaultSettings() Settings {
	return Settings{
		StartingCurrency:     300000,
		StartingSatisfaction: 50,
		StartingReputation:   50,
		EventsPerRound:       7,
		OpponentCount:        3,
	}
}

// StartingResources builds the initial human resource state
func (s Settings) StartingResources() resources.State {
	return resources.NewState(s.StartingCurrency, s.StartingSatisfaction, s.StartingReputation, resources.HumanBounds())
}
