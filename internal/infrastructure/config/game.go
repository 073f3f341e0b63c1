package config

// DefaultOpponentCount is used when no opponent count is configured
const DefaultOpponentCount = 3

// GameConfig holds the starting values of new games
type GameConfig struct {
	StartingCurrency     int `mapstructure:"starting_currency" validate:"min=0"`
	StartingSatisfaction int `mapstructure:"starting_satisfaction" validate:"min=0,max=100"`
	StartingReputation   int `mapstructure:"starting_reputation" validate:"min=0"`

	// Scripted events the player completes per round
	EventsPerRound int `mapstructure:"events_per_round" validate:"min=1,max=50"`

	// Number of simulated competitors (at most the roster size).
	// Nil means the default of 3; 0 is a solo game.
	OpponentCount *int `mapstructure:"opponent_count" validate:"omitempty,min=0,max=5"`

	// Seed makes games reproducible; 0 seeds from the clock
	Seed int64 `mapstructure:"seed"`

	// Default player display name
	PlayerName string `mapstructure:"player_name" validate:"max=64"`
}

// Opponents returns the configured opponent count
func (g GameConfig) Opponents() int {
	if g.OpponentCount == nil {
		return DefaultOpponentCount
	}
	return *g.OpponentCount
}
