package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// GetCurrentEventQuery asks for the event being played.
// Opening an event for the first time persists its flow so it can be resumed.
type GetCurrentEventQuery struct {
	SessionID string `validate:"required"`
}

// GetCurrentEventResponse carries the current event view
type GetCurrentEventResponse struct {
	View game.EventView
}

// GetCurrentEventHandler handles the GetCurrentEvent query
type GetCurrentEventHandler struct {
	service *game.Service
}

// NewGetCurrentEventHandler creates a new GetCurrentEventHandler
func NewGetCurrentEventHandler(service *game.Service) *GetCurrentEventHandler {
	return &GetCurrentEventHandler{service: service}
}

// Handle executes the GetCurrentEvent query
func (h *GetCurrentEventHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCurrentEventQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCurrentEventQuery")
	}

	var view game.EventView
	if _, err := h.service.Mutate(ctx, query.SessionID, func(s *game.Session) error {
		var err error
		view, err = s.CurrentEvent()
		return err
	}); err != nil {
		return nil, err
	}
	return &GetCurrentEventResponse{View: view}, nil
}
