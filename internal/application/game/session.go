package game

import (
	"fmt"
	"time"

	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/inventory"
	"github.com/andrescamacho/bakerysim-go/internal/domain/leaderboard"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/sales"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// EventRef identifies one event of one round
type EventRef struct {
	Round   int    `json:"round"`
	Index   int    `json:"index"`
	EventID string `json:"event_id"`
}

// Note is a log line produced while operating on a session
type Note struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// Session is the game context: it owns the player's state, the opponent
// roster and the report aggregator. Operations are pure state transitions;
// persistence happens outside, after an operation returns.
type Session struct {
	ID         string
	PlayerName string
	CreatedAt  time.Time

	Resources resources.State
	Inventory *inventory.Inventory
	Round     round.State
	Flow      *event.Flow
	Report    report.Accumulator
	History   report.History
	Opponents []*opponent.Opponent

	// LastFinalized guards feedback finalization against double application
	LastFinalized *EventRef

	// Sequence counts persisted mutations; it derives the RNG stream of seeded sessions
	Sequence int64

	content   Content
	settings  Settings
	engine    *sales.Engine
	simulator *opponent.Simulator
	clock     shared.Clock

	postings  []Posting
	notes     []Note
	recovered bool
}

// NewSession creates a fresh game with a new opponent roster
func NewSession(id, playerName string, content Content, settings Settings, rng shared.Random, clock shared.Clock) (*Session, error) {
	if id == "" {
		return nil, shared.NewValidationError("session_id", "cannot be empty")
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	if settings.EventsPerRound < 1 {
		return nil, shared.NewValidationError("events_per_round", "must be at least 1")
	}

	roster, err := opponent.NewRoster(settings.OpponentCount, resources.NewState(
		settings.StartingCurrency, settings.StartingSatisfaction, settings.StartingReputation, resources.OpponentBounds()))
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         id,
		PlayerName: playerName,
		CreatedAt:  clock.Now(),
		Resources:  settings.StartingResources(),
		Inventory:  inventory.New(),
		Round:      round.New(),
		Opponents:  roster,
	}
	s.attach(content, settings, rng, clock)
	return s, nil
}

func (s *Session) attach(content Content, settings Settings, rng shared.Random, clock shared.Clock) {
	s.content = content
	s.settings = settings
	s.clock = clock
	s.engine = sales.NewEngine(content.Catalog, rng)
	s.simulator = opponent.NewSimulator(content.Regions, content.Catalog, content.Events, rng, settings.EventsPerRound)
}

// Content returns the game data the session plays with
func (s *Session) Content() Content {
	return s.content
}

// Settings returns the session's game settings
func (s *Session) Settings() Settings {
	return s.settings
}

// Recovered reports whether loading or an operation repaired drifted state
// that should be persisted even if the operation itself failed
func (s *Session) Recovered() bool {
	return s.recovered
}

func (s *Session) note(level, message string, metadata map[string]interface{}) {
	s.notes = append(s.notes, Note{Level: level, Message: message, Metadata: metadata})
}

// TakeNotes returns and clears the pending log notes
func (s *Session) TakeNotes() []Note {
	out := s.notes
	s.notes = nil
	return out
}

// Status is the read model of the session's progression
type Status struct {
	SessionID       string
	PlayerName      string
	Round           int
	Signal          round.Signal
	Stage           *event.Stage
	RegionType      string
	District        string
	Coefficient     float64
	HasStocked      bool
	EventsCompleted int
	EventsPerRound  int
	Resources       resources.State
	Inventory       map[string]int
	LatestReport    *report.RoundReport
}

// Status reports the current progression
func (s *Session) Status() Status {
	st := Status{
		SessionID:       s.ID,
		PlayerName:      s.PlayerName,
		Round:           s.Round.CurrentRound,
		Signal:          s.Round.Signal(),
		RegionType:      s.Round.RegionType,
		District:        s.Round.District,
		Coefficient:     s.Round.Coefficient,
		HasStocked:      s.Round.HasStocked,
		EventsCompleted: s.Round.EventsCompleted,
		EventsPerRound:  s.settings.EventsPerRound,
		Resources:       s.Resources,
		Inventory:       s.Inventory.Snapshot(),
	}
	if s.Flow != nil && st.Signal == round.SignalEventInProgress {
		stage := s.Flow.Stage
		st.Stage = &stage
	}
	if latest, ok := s.History.Latest(); ok {
		st.LatestReport = &latest
	}
	return st
}

// Leaderboard ranks the player and every opponent from a read-only snapshot
func (s *Session) Leaderboard() []leaderboard.Entry {
	name := s.PlayerName
	if name == "" {
		name = "You"
	}
	entries := make([]leaderboard.Entry, 0, len(s.Opponents)+1)
	entries = append(entries, leaderboard.Entry{
		ActorID:   shared.Human(),
		Name:      name,
		Resources: s.Resources,
	})
	for _, o := range s.Opponents {
		entries = append(entries, leaderboard.Entry{
			ActorID:     o.ActorID(),
			Name:        o.Name,
			Personality: o.Personality.String(),
			Resources:   o.Resources,
		})
	}
	return leaderboard.Rank(entries)
}

func (s *Session) String() string {
	return fmt.Sprintf("Session(%s, %s, %s)", s.ID, s.Round, s.Resources)
}
