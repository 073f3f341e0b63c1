package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// ListSessionsQuery asks for every stored session ID
type ListSessionsQuery struct{}

// ListSessionsResponse lists session IDs, sorted
type ListSessionsResponse struct {
	SessionIDs []string
}

// ListSessionsHandler handles the ListSessions query
type ListSessionsHandler struct {
	service *game.Service
}

// NewListSessionsHandler creates a new ListSessionsHandler
func NewListSessionsHandler(service *game.Service) *ListSessionsHandler {
	return &ListSessionsHandler{service: service}
}

// Handle executes the ListSessions query
func (h *ListSessionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListSessionsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSessionsQuery")
	}

	ids, err := h.service.Repository().List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSessionsResponse{SessionIDs: ids}, nil
}
