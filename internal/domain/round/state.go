package round

import (
	"errors"
	"fmt"
)

var (
	// ErrRegionSelectionRequired is returned when stocking or events are attempted before region selection
	ErrRegionSelectionRequired = errors.New("region selection required")

	// ErrStockingRequired is returned when events are attempted before stocking (the stock gate)
	ErrStockingRequired = errors.New("stocking required before events can begin")

	// ErrRegionAlreadySelected is returned when a region is selected twice in one round
	ErrRegionAlreadySelected = errors.New("region already selected for this round")

	// ErrAlreadyStocked is returned when stocking twice in one round
	ErrAlreadyStocked = errors.New("inventory already purchased for this round")

	// ErrReportPending is returned when a new round is started before the previous report is acknowledged
	ErrReportPending = errors.New("round report has not been acknowledged")

	// ErrRoundComplete is returned when more events are completed than the round allows
	ErrRoundComplete = errors.New("all events of this round are complete")
)

// State is the per-actor round progression.
//
// Invariants:
//   - CurrentRound >= 1
//   - 0 <= EventsCompleted <= events per round
//   - region/district are selected before stocking, stocking before events
//   - HasStocked and EventsCompleted reset exactly at round transition
type State struct {
	CurrentRound    int     `json:"current_round"`
	EventsCompleted int     `json:"events_completed"`
	RegionType      string  `json:"region_type,omitempty"`
	District        string  `json:"district,omitempty"`
	Coefficient     float64 `json:"coefficient,omitempty"`
	HasStocked      bool    `json:"has_stocked"`

	// ReportPending is set when a round completes and cleared once the player moves on
	ReportPending bool `json:"report_pending,omitempty"`
}

// New returns the state of a fresh game
func New() State {
	return State{CurrentRound: 1}
}

// HasRegion reports whether the region of this round is selected
func (s State) HasRegion() bool {
	return s.RegionType != "" && s.District != ""
}

// SelectRegion records the region and district for this round
func (s *State) SelectRegion(regionType, district string, coefficient float64) error {
	if s.HasRegion() {
		return ErrRegionAlreadySelected
	}
	s.RegionType = regionType
	s.District = district
	s.Coefficient = coefficient
	s.ReportPending = false
	return nil
}

// CanStock checks the region gate
func (s State) CanStock() error {
	if !s.HasRegion() {
		return ErrRegionSelectionRequired
	}
	if s.HasStocked {
		return ErrAlreadyStocked
	}
	return nil
}

// MarkStocked passes the stock gate
func (s *State) MarkStocked() error {
	if err := s.CanStock(); err != nil {
		return err
	}
	s.HasStocked = true
	return nil
}

// CanPlayEvents checks the region and stock gates
func (s State) CanPlayEvents() error {
	if !s.HasRegion() {
		return ErrRegionSelectionRequired
	}
	if !s.HasStocked {
		return ErrStockingRequired
	}
	return nil
}

// CompleteEvent counts one finished event and reports whether the round is now complete
func (s *State) CompleteEvent(eventsPerRound int) (bool, error) {
	if err := s.CanPlayEvents(); err != nil {
		return false, err
	}
	if s.EventsCompleted >= eventsPerRound {
		return true, ErrRoundComplete
	}
	s.EventsCompleted++
	return s.EventsCompleted >= eventsPerRound, nil
}

// Advance transitions to the next round, resetting the round-scoped flags
func (s *State) Advance() {
	s.CurrentRound++
	s.EventsCompleted = 0
	s.HasStocked = false
	s.RegionType = ""
	s.District = ""
	s.Coefficient = 0
	s.ReportPending = true
}

// Normalize repairs impossible values left by corrupt persisted data
func (s *State) Normalize(eventsPerRound int) bool {
	changed := false
	if s.CurrentRound < 1 {
		s.CurrentRound = 1
		changed = true
	}
	if s.EventsCompleted < 0 || s.EventsCompleted > eventsPerRound {
		s.EventsCompleted = 0
		changed = true
	}
	if !s.HasRegion() && (s.HasStocked || s.EventsCompleted > 0) {
		s.HasStocked = false
		s.EventsCompleted = 0
		changed = true
	}
	if !s.HasStocked && s.EventsCompleted > 0 {
		s.EventsCompleted = 0
		changed = true
	}
	return changed
}

// Signal derives the lifecycle signal exposed to the UI layer
func (s State) Signal() Signal {
	switch {
	case s.ReportPending && !s.HasRegion():
		return SignalRoundComplete
	case !s.HasRegion():
		return SignalRegionSelectionRequired
	case !s.HasStocked:
		return SignalStockingRequired
	default:
		return SignalEventInProgress
	}
}

func (s State) String() string {
	return fmt.Sprintf("Round(%d, events=%d, region=%s/%s, stocked=%t)",
		s.CurrentRound, s.EventsCompleted, s.RegionType, s.District, s.HasStocked)
}

// AcknowledgeReport clears the round-complete signal
func (s *State) AcknowledgeReport() {
	s.ReportPending = false
}
