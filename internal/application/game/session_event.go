package game

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
	"github.com/andrescamacho/bakerysim-go/internal/domain/report"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/round"
	"github.com/andrescamacho/bakerysim-go/internal/domain/sales"
)

// EventView is the current event together with the player's position in it
type EventView struct {
	Round          int
	Index          int
	EventsPerRound int
	Event          event.Event
	Flow           event.Flow
}

// FeedbackResult is the outcome of finalizing an event
type FeedbackResult struct {
	// Applied is false when the event had already been finalized
	Applied bool

	EventID       string
	Option        event.Option
	Effects       resources.Delta
	Sales         sales.Result
	Resources     resources.State
	RoundComplete bool
	Report        *report.RoundReport
	Opponents     map[string]opponent.EventOutcome
}

// CurrentEvent returns the event being played, resuming the persisted flow.
// A flow that no longer matches the round state is rebuilt from
// (region, events completed) rather than trusted.
func (s *Session) CurrentEvent() (EventView, error) {
	if err := s.Round.CanPlayEvents(); err != nil {
		return EventView{}, err
	}
	if s.Round.EventsCompleted >= s.settings.EventsPerRound {
		return EventView{}, round.ErrRoundComplete
	}

	index := s.Round.EventsCompleted
	e, err := s.content.Events.EventAt(s.Round.RegionType, index)
	if err != nil {
		return EventView{}, err
	}

	if s.Flow == nil {
		flow := event.Start(s.Round.RegionType, index, e.ID)
		s.Flow = &flow
	} else if flow, changed := s.Flow.Reconcile(s.Round.RegionType, index, e); changed {
		s.note(logging.LevelWarning, "event flow out of sync with round state; rebuilt", map[string]interface{}{
			"round":       s.Round.CurrentRound,
			"event_index": index,
			"event_id":    e.ID,
			"stage":       flow.Stage.String(),
		})
		s.Flow = &flow
		s.recovered = true
	}

	return EventView{
		Round:          s.Round.CurrentRound,
		Index:          index,
		EventsPerRound: s.settings.EventsPerRound,
		Event:          e,
		Flow:           *s.Flow,
	}, nil
}

// AdvanceDialogue moves from the economic signal reveal to the narrative, then to the decision
func (s *Session) AdvanceDialogue() (EventView, error) {
	view, err := s.CurrentEvent()
	if err != nil {
		return EventView{}, err
	}
	next, err := view.Flow.Advance()
	if err != nil {
		return EventView{}, err
	}
	s.Flow = &next
	s.LastFinalized = nil
	view.Flow = next
	return view, nil
}

// SelectOption records the player's decision and moves to feedback
func (s *Session) SelectOption(optionID string) (EventView, error) {
	view, err := s.CurrentEvent()
	if err != nil {
		return EventView{}, err
	}
	next, err := view.Flow.Choose(view.Event, optionID)
	if err != nil {
		return EventView{}, err
	}
	s.Flow = &next
	s.LastFinalized = nil
	view.Flow = next
	return view, nil
}

// ConfirmFeedback finalizes the current event exactly once: it applies the
// option's effects, runs a sales pass, records the report line item and counts
// the event. The last event of the round closes the round.
//
// Confirming again after a finalize is a no-op with Applied=false.
func (s *Session) ConfirmFeedback() (FeedbackResult, error) {
	if s.LastFinalized != nil && (s.Flow == nil || s.Flow.Stage == event.StageEconomicSignalReveal) {
		return FeedbackResult{Applied: false, EventID: s.LastFinalized.EventID, Resources: s.Resources}, nil
	}

	view, err := s.CurrentEvent()
	if err != nil {
		return FeedbackResult{}, err
	}
	if !view.Flow.ReadyToFinalize() {
		return FeedbackResult{}, fmt.Errorf("%w: event %s is at stage %s", ErrDecisionPending, view.Event.ID, view.Flow.Stage)
	}
	option, ok := view.Event.Option(view.Flow.SelectedOptionID)
	if !ok {
		return FeedbackResult{}, fmt.Errorf("%w: %s", event.ErrUnknownOption, view.Flow.SelectedOptionID)
	}

	roundNumber := s.Round.CurrentRound
	before := s.Resources.Currency
	delta := s.Resources.Apply(option.Effects, resources.HumanBounds())
	s.post(Posting{
		Round:             roundNumber,
		Type:              ledger.TransactionTypeEventEffect,
		Amount:            delta.Currency,
		BalanceBefore:     before,
		BalanceAfter:      s.Resources.Currency,
		Description:       fmt.Sprintf("%s: %s", view.Event.Title, option.Text),
		RelatedEntityType: "event",
		RelatedEntityID:   view.Event.ID,
	})

	conditions := sales.Conditions{
		RegionCoefficient:  s.Round.Coefficient,
		EconomicMultiplier: view.Event.Signal.Multiplier(),
		OptionCoefficient:  option.Coefficient,
	}
	salesResult := s.engine.ComputeSales(s.Inventory, conditions)
	before = s.Resources.Currency
	s.Resources.Credit(salesResult.TotalRevenue)
	s.post(Posting{
		Round:             roundNumber,
		Type:              ledger.TransactionTypeSalesRevenue,
		Amount:            salesResult.TotalRevenue,
		BalanceBefore:     before,
		BalanceAfter:      s.Resources.Currency,
		Description:       fmt.Sprintf("Sales during %s (%d units)", view.Event.Title, salesResult.TotalSalesVolume),
		RelatedEntityType: "event",
		RelatedEntityID:   view.Event.ID,
	})

	if !s.Report.HasRegionInfo() || s.Report.RoundNumber != roundNumber {
		s.restoreRegionInfo()
	}
	if err := s.Report.RecordEvent(report.LineItem{
		EventID:            view.Event.ID,
		Title:              view.Event.Title,
		OptionID:           option.ID,
		Revenue:            salesResult.TotalRevenue,
		CurrencyEffect:     delta.Currency,
		SalesVolume:        salesResult.TotalSalesVolume,
		SatisfactionChange: delta.Satisfaction,
		ReputationChange:   delta.Reputation,
		RecordedAt:         s.clock.Now(),
	}, false); err != nil {
		return FeedbackResult{}, err
	}

	result := FeedbackResult{
		Applied:   true,
		EventID:   view.Event.ID,
		Option:    option,
		Effects:   delta,
		Sales:     salesResult,
		Opponents: s.playOpponentEvents(),
	}

	complete, err := s.Round.CompleteEvent(s.settings.EventsPerRound)
	if err != nil && !errors.Is(err, round.ErrRoundComplete) {
		return FeedbackResult{}, err
	}
	s.LastFinalized = &EventRef{Round: roundNumber, Index: view.Index, EventID: view.Event.ID}

	if complete {
		r, _ := s.Report.Generate(&s.History, s.clock.Now())
		s.closeRound()
		result.RoundComplete = true
		result.Report = &r
	} else {
		next, err := s.content.Events.EventAt(s.Round.RegionType, s.Round.EventsCompleted)
		if err != nil {
			return FeedbackResult{}, err
		}
		flow := event.Start(s.Round.RegionType, s.Round.EventsCompleted, next.ID)
		s.Flow = &flow
	}

	result.Resources = s.Resources
	return result, nil
}

func (s *Session) playOpponentEvents() map[string]opponent.EventOutcome {
	outcomes := make(map[string]opponent.EventOutcome, len(s.Opponents))
	for _, o := range s.Opponents {
		outcome, err := s.simulator.PlayEvent(o)
		if err != nil {
			s.note(logging.LevelWarning, "opponent event failed", map[string]interface{}{
				"opponent": o.ID,
				"error":    err.Error(),
			})
			continue
		}
		outcomes[o.ID] = outcome
	}
	return outcomes
}
