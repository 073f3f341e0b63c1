package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/inventory"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ports"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// Record names of a session; each is stored whole under its own key
const (
	RecordMeta            = "meta"
	RecordResources       = "resources"
	RecordInventory       = "inventory"
	RecordRoundState      = "round_state"
	RecordEventFlow       = "event_flow"
	RecordFinancialReport = "financial_report"
	RecordReportHistory   = "report_history"
	RecordOpponents       = "ai_opponents"
)

const keyPrefix = "session"

// RecordKey builds the store key of one session record
func RecordKey(sessionID, record string) string {
	return keyPrefix + ":" + sessionID + ":" + record
}

type sessionMeta struct {
	ID            string    `json:"id"`
	PlayerName    string    `json:"player_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Sequence      int64     `json:"sequence"`
	LastFinalized *EventRef `json:"last_finalized,omitempty"`
}

// Repository persists sessions as independent records in a StateStore
type Repository struct {
	store    ports.StateStore
	content  Content
	settings Settings
	clock    shared.Clock
}

// NewRepository creates a session repository
func NewRepository(store ports.StateStore, content Content, settings Settings, clock shared.Clock) *Repository {
	return &Repository{store: store, content: content, settings: settings, clock: clock}
}

// NewSession creates an unsaved session whose RNG follows the repository's seed
func (r *Repository) NewSession(id, playerName string) (*Session, error) {
	return NewSession(id, playerName, r.content, r.settings, r.random(0), r.clock)
}

// random derives the RNG of a session mutation. Seeded games stay reproducible
// without replaying the same stream on every command.
func (r *Repository) random(sequence int64) shared.Random {
	if r.settings.Seed == 0 {
		return shared.NewRandom(0)
	}
	return shared.NewRandom(r.settings.Seed + sequence*7919)
}

// Exists reports whether a session is stored under id
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	_, found, err := r.store.Get(ctx, RecordKey(id, RecordMeta))
	if err != nil {
		return false, fmt.Errorf("failed to read session meta: %w", err)
	}
	return found, nil
}

// Load rebuilds a session. Missing or corrupt records fall back to safe
// defaults and mark the session as recovered; only a missing meta record is
// an error.
func (r *Repository) Load(ctx context.Context, id string) (*Session, error) {
	var meta sessionMeta
	found, err := r.read(ctx, id, RecordMeta, &meta)
	if err != nil && found {
		return nil, fmt.Errorf("session %s meta is corrupt: %w", id, err)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s := &Session{
		ID:            id,
		PlayerName:    meta.PlayerName,
		CreatedAt:     meta.CreatedAt,
		Sequence:      meta.Sequence,
		LastFinalized: meta.LastFinalized,
	}
	s.attach(r.content, r.settings, r.random(meta.Sequence+1), r.clock)

	s.Resources = r.settings.StartingResources()
	r.restore(ctx, s, RecordResources, &s.Resources)
	s.Resources = resources.NewState(s.Resources.Currency, s.Resources.Satisfaction, s.Resources.Reputation, resources.HumanBounds())

	s.Inventory = inventory.New()
	var quantities inventory.Inventory
	if r.restore(ctx, s, RecordInventory, &quantities) {
		s.Inventory = inventory.FromQuantities(quantities.Quantities)
	}

	s.Round = round.New()
	r.restore(ctx, s, RecordRoundState, &s.Round)
	if s.Round.Normalize(r.settings.EventsPerRound) {
		s.note(logging.LevelWarning, "round state normalized after load", map[string]interface{}{"round": s.Round.CurrentRound})
		s.recovered = true
	}
	if r.rederiveRegion(s, shared.HumanActorID, &s.Round) {
		s.recovered = true
	}

	var flow event.Flow
	if r.restore(ctx, s, RecordEventFlow, &flow) {
		s.Flow = &flow
	}
	r.restore(ctx, s, RecordFinancialReport, &s.Report)
	r.restore(ctx, s, RecordReportHistory, &s.History)

	read := r.restore(ctx, s, RecordOpponents, &s.Opponents)
	if !read || s.Opponents == nil || hasBrokenOpponent(s.Opponents) {
		if read && s.Opponents != nil {
			s.note(logging.LevelWarning, "session record unreadable; using default", map[string]interface{}{
				"record": RecordOpponents,
				"error":  "empty opponent entry",
			})
		}
		roster, err := opponent.NewRoster(r.settings.OpponentCount, resources.NewState(
			r.settings.StartingCurrency, r.settings.StartingSatisfaction, r.settings.StartingReputation, resources.OpponentBounds()))
		if err != nil {
			return nil, err
		}
		s.Opponents = roster
		s.recovered = true
	}
	for _, o := range s.Opponents {
		o.Normalize(r.settings.EventsPerRound)
		if r.rederiveRegion(s, o.ID, &o.Round) {
			s.recovered = true
		}
		if o.Round.CurrentRound != s.Round.CurrentRound {
			s.note(logging.LevelWarning, "opponent out of step; round state reset", map[string]interface{}{
				"opponent":       o.ID,
				"opponent_round": o.Round.CurrentRound,
				"round":          s.Round.CurrentRound,
			})
			o.Round = round.New()
			o.Round.CurrentRound = s.Round.CurrentRound
			s.recovered = true
		}
	}

	return s, nil
}

func hasBrokenOpponent(opponents []*opponent.Opponent) bool {
	for _, o := range opponents {
		if o == nil || o.ID == "" {
			return true
		}
	}
	return false
}

// rederiveRegion takes the district coefficient from the region table.
// A region missing from the table clears the selection, keeping the round
// number. Returns true when st changed.
func (r *Repository) rederiveRegion(s *Session, actor string, st *round.State) bool {
	if !st.HasRegion() {
		return false
	}
	coefficient, err := r.content.Regions.Coefficient(st.RegionType, st.District)
	if err != nil {
		s.note(logging.LevelWarning, "persisted region no longer exists; region selection reset", map[string]interface{}{
			"actor":       actor,
			"region_type": st.RegionType,
			"district":    st.District,
		})
		current := st.CurrentRound
		*st = round.New()
		st.CurrentRound = current
		return true
	}
	if st.Coefficient == coefficient {
		return false
	}
	s.note(logging.LevelWarning, "district coefficient restored from region table", map[string]interface{}{
		"actor":     actor,
		"district":  st.District,
		"persisted": st.Coefficient,
		"table":     coefficient,
	})
	st.Coefficient = coefficient
	return true
}

// restore decodes one record into target, noting corrupt or missing data.
// It returns true when the record was read.
func (r *Repository) restore(ctx context.Context, s *Session, record string, target interface{}) bool {
	found, err := r.read(ctx, s.ID, record, target)
	if err != nil {
		s.note(logging.LevelWarning, "session record unreadable; using default", map[string]interface{}{
			"record": record,
			"error":  err.Error(),
		})
		s.recovered = true
		return false
	}
	return found
}

func (r *Repository) read(ctx context.Context, id, record string, target interface{}) (bool, error) {
	data, found, err := r.store.Get(ctx, RecordKey(id, record))
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", record, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", record, err)
	}
	return true, nil
}

// Save writes every record of the session, each as one whole object
func (r *Repository) Save(ctx context.Context, s *Session) error {
	s.Sequence++
	meta := sessionMeta{
		ID:            s.ID,
		PlayerName:    s.PlayerName,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     r.clock.Now(),
		Sequence:      s.Sequence,
		LastFinalized: s.LastFinalized,
	}

	records := []struct {
		name  string
		value interface{}
	}{
		{RecordResources, s.Resources},
		{RecordInventory, s.Inventory},
		{RecordRoundState, s.Round},
		{RecordFinancialReport, s.Report},
		{RecordReportHistory, s.History},
		{RecordOpponents, s.Opponents},
		{RecordMeta, meta},
	}
	for _, rec := range records {
		if err := r.write(ctx, s.ID, rec.name, rec.value); err != nil {
			return err
		}
	}

	if s.Flow == nil {
		if err := r.store.Remove(ctx, RecordKey(s.ID, RecordEventFlow)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", RecordEventFlow, err)
		}
		return nil
	}
	return r.write(ctx, s.ID, RecordEventFlow, s.Flow)
}

func (r *Repository) write(ctx context.Context, id, record string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", record, err)
	}
	if err := r.store.Set(ctx, RecordKey(id, record), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", record, err)
	}
	return nil
}

// Delete removes every record of a session
func (r *Repository) Delete(ctx context.Context, id string) error {
	for _, record := range []string{
		RecordMeta, RecordResources, RecordInventory, RecordRoundState,
		RecordEventFlow, RecordFinancialReport, RecordReportHistory, RecordOpponents,
	} {
		if err := r.store.Remove(ctx, RecordKey(id, record)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", record, err)
		}
	}
	return nil
}

// List returns the IDs of all stored sessions, sorted
func (r *Repository) List(ctx context.Context) ([]string, error) {
	keys, err := r.store.Keys(ctx, keyPrefix+":")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	suffix := ":" + RecordMeta
	ids := make([]string, 0)
	for _, k := range keys {
		if !strings.HasSuffix(k, suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(k, keyPrefix+":"), suffix))
	}
	sort.Strings(ids)
	return ids, nil
}
