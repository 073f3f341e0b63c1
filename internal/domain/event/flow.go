package event

import "fmt"

// Stage is the position of the event flow within one event
type Stage int

const (
	StageEconomicSignalReveal Stage = iota
	StageNarrative
	StageDecision
	StageFeedback
)

func (s Stage) String() string {
	switch s {
	case StageEconomicSignalReveal:
		return "ECONOMIC_SIGNAL_REVEAL"
	case StageNarrative:
		return "NARRATIVE"
	case StageDecision:
		return "DECISION"
	case StageFeedback:
		return "FEEDBACK"
	default:
		return fmt.Sprintf("STAGE(%d)", int(s))
	}
}

func (s Stage) IsValid() bool {
	return s >= StageEconomicSignalReveal && s <= StageFeedback
}

// Flow is the durable position of an actor inside the current event.
// Transitions are forward-only and single-step; each returns the next Flow.
type Flow struct {
	Stage            Stage  `json:"stage"`
	RegionType       string `json:"region_type"`
	EventIndex       int    `json:"event_index"`
	EventID          string `json:"event_id"`
	SelectedOptionID string `json:"selected_option_id,omitempty"`
}

// Start opens the flow of the event at index in the economic-signal reveal stage
func Start(regionType string, index int, eventID string) Flow {
	return Flow{
		Stage:      StageEconomicSignalReveal,
		RegionType: regionType,
		EventIndex: index,
		EventID:    eventID,
	}
}

// Advance moves past a dialogue stage: reveal → narrative → decision
func (f Flow) Advance() (Flow, error) {
	switch f.Stage {
	case StageEconomicSignalReveal:
		f.Stage = StageNarrative
	case StageNarrative:
		f.Stage = StageDecision
	default:
		return f, &ErrInvalidTransition{From: f.Stage, Attempted: "advance dialogue"}
	}
	return f, nil
}

// Choose records the decision and moves to feedback
func (f Flow) Choose(e Event, optionID string) (Flow, error) {
	if f.Stage != StageDecision {
		return f, &ErrInvalidTransition{From: f.Stage, Attempted: "select an option"}
	}
	if e.ID != f.EventID {
		return f, fmt.Errorf("%w: event %s is not the current event %s", ErrUnknownOption, e.ID, f.EventID)
	}
	if _, ok := e.Option(optionID); !ok {
		return f, fmt.Errorf("%w: %s on event %s", ErrUnknownOption, optionID, e.ID)
	}
	f.Stage = StageFeedback
	f.SelectedOptionID = optionID
	return f, nil
}

// AwaitingDecision reports whether the flow is stopped at an unanswered decision
func (f Flow) AwaitingDecision() bool {
	return f.Stage == StageDecision
}

// ReadyToFinalize reports whether feedback can be applied
func (f Flow) ReadyToFinalize() bool {
	return f.Stage == StageFeedback && f.SelectedOptionID != ""
}

// Reconcile repairs a flow that has drifted from the round state.
// It returns the repaired flow and whether anything changed.
//
// Rules:
//   - a flow for another region or event index restarts at the reveal stage of the expected event
//   - a missing event ID is re-derived, keeping the stage
//   - an invalid stage or a feedback stage without a valid selection falls back to decision
func (f Flow) Reconcile(regionType string, index int, expected Event) (Flow, bool) {
	if f.RegionType != regionType || f.EventIndex != index || (f.EventID != "" && f.EventID != expected.ID) {
		return Start(regionType, index, expected.ID), true
	}

	changed := false
	if f.EventID == "" {
		f.EventID = expected.ID
		changed = true
	}
	if !f.Stage.IsValid() {
		f.Stage = StageEconomicSignalReveal
		f.SelectedOptionID = ""
		return f, true
	}
	if f.Stage == StageFeedback {
		if _, ok := expected.Option(f.SelectedOptionID); !ok {
			f.Stage = StageDecision
			f.SelectedOptionID = ""
			changed = true
		}
	}
	if f.Stage < StageFeedback && f.SelectedOptionID != "" {
		f.SelectedOptionID = ""
		changed = true
	}
	return f, changed
}
