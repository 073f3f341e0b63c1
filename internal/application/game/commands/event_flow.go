package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// EventResponse is the player's position in the current event
type EventResponse struct {
	View game.EventView
}

// AdvanceDialogueCommand moves past the economic signal reveal or the narrative
type AdvanceDialogueCommand struct {
	SessionID string `validate:"required"`
}

// AdvanceDialogueHandler handles the AdvanceDialogue command
type AdvanceDialogueHandler struct {
	service *game.Service
}

// NewAdvanceDialogueHandler creates a new AdvanceDialogueHandler
func NewAdvanceDialogueHandler(service *game.Service) *AdvanceDialogueHandler {
	return &AdvanceDialogueHandler{service: service}
}

// Handle executes the AdvanceDialogue command
func (h *AdvanceDialogueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceDialogueCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceDialogueCommand")
	}

	var view game.EventView
	if _, err := h.service.Mutate(ctx, cmd.SessionID, func(s *game.Session) error {
		var err error
		view, err = s.AdvanceDialogue()
		return err
	}); err != nil {
		return nil, err
	}
	return &EventResponse{View: view}, nil
}

// SelectOptionCommand records the decision of the current event
type SelectOptionCommand struct {
	SessionID string `validate:"required"`
	OptionID  string `validate:"required"`
}

// SelectOptionHandler handles the SelectOption command
type SelectOptionHandler struct {
	service *game.Service
}

// NewSelectOptionHandler creates a new SelectOptionHandler
func NewSelectOptionHandler(service *game.Service) *SelectOptionHandler {
	return &SelectOptionHandler{service: service}
}

// Handle executes the SelectOption command
func (h *SelectOptionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SelectOptionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SelectOptionCommand")
	}

	var view game.EventView
	if _, err := h.service.Mutate(ctx, cmd.SessionID, func(s *game.Session) error {
		var err error
		view, err = s.SelectOption(cmd.OptionID)
		return err
	}); err != nil {
		return nil, err
	}
	return &EventResponse{View: view}, nil
}

// ConfirmFeedbackCommand finalizes the current event
type ConfirmFeedbackCommand struct {
	SessionID string `validate:"required"`
}

// ConfirmFeedbackResponse is the outcome of finalizing an event
type ConfirmFeedbackResponse struct {
	Result game.FeedbackResult
	Status game.Status
}

// ConfirmFeedbackHandler handles the ConfirmFeedback command
type ConfirmFeedbackHandler struct {
	service *game.Service
}

// NewConfirmFeedbackHandler creates a new ConfirmFeedbackHandler
func NewConfirmFeedbackHandler(service *game.Service) *ConfirmFeedbackHandler {
	return &ConfirmFeedbackHandler{service: service}
}

// Handle executes the ConfirmFeedback command
func (h *ConfirmFeedbackHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ConfirmFeedbackCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ConfirmFeedbackCommand")
	}

	var result game.FeedbackResult
	session, err := h.service.Mutate(ctx, cmd.SessionID, func(s *game.Session) error {
		var err error
		result, err = s.ConfirmFeedback()
		return err
	})
	if err != nil {
		return nil, err
	}

	logger := logging.LoggerFromContext(ctx)
	if !result.Applied {
		logger.Log(logging.LevelDebug, "Feedback already applied; ignoring", map[string]interface{}{
			"session_id": cmd.SessionID,
			"event_id":   result.EventID,
		})
		return &ConfirmFeedbackResponse{Result: result, Status: session.Status()}, nil
	}

	metrics.RecordEventFinalized(cmd.SessionID, result.Sales.TotalRevenue, result.Sales.TotalSalesVolume)
	logger.Log(logging.LevelInfo, "Event finalized", map[string]interface{}{
		"session_id":   cmd.SessionID,
		"event_id":     result.EventID,
		"option_id":    result.Option.ID,
		"revenue":      result.Sales.TotalRevenue,
		"sales_volume": result.Sales.TotalSalesVolume,
		"currency":     result.Resources.Currency,
	})
	if result.RoundComplete && result.Report != nil {
		metrics.RecordRoundCompleted(cmd.SessionID, result.Report.NetProfit())
		logger.Log(logging.LevelInfo, "Round complete", map[string]interface{}{
			"session_id": cmd.SessionID,
			"round":      result.Report.RoundNumber,
			"net_profit": result.Report.NetProfit(),
		})
	}
	return &ConfirmFeedbackResponse{Result: result, Status: session.Status()}, nil
}
