package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// GetRoundStatusQuery asks for the session's progression
type GetRoundStatusQuery struct {
	SessionID string `validate:"required"`
}

// GetRoundStatusResponse carries the status read model
type GetRoundStatusResponse struct {
	Status game.Status
}

// GetRoundStatusHandler handles the GetRoundStatus query
type GetRoundStatusHandler struct {
	service *game.Service
}

// NewGetRoundStatusHandler creates a new GetRoundStatusHandler
func NewGetRoundStatusHandler(service *game.Service) *GetRoundStatusHandler {
	return &GetRoundStatusHandler{service: service}
}

// Handle executes the GetRoundStatus query
func (h *GetRoundStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetRoundStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRoundStatusQuery")
	}

	session, err := h.service.Load(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}
	return &GetRoundStatusResponse{Status: session.Status()}, nil
}
