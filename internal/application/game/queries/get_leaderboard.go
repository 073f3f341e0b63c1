package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/leaderboard"
	"github.com/andrescamacho/bakerysim-go/internal/domain/opponent"
)

// GetLeaderboardQuery asks for the ranking of the player and opponents
type GetLeaderboardQuery struct {
	SessionID string `validate:"required"`
}

// GetLeaderboardResponse carries the ranking and opponent statistics
type GetLeaderboardResponse struct {
	Round   int
	Entries []leaderboard.Entry
	Stats   map[string]opponent.Stats
}

// GetLeaderboardHandler handles the GetLeaderboard query
type GetLeaderboardHandler struct {
	service *game.Service
}

// NewGetLeaderboardHandler creates a new GetLeaderboardHandler
func NewGetLeaderboardHandler(service *game.Service) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{service: service}
}

// Handle executes the GetLeaderboard query
func (h *GetLeaderboardHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetLeaderboardQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLeaderboardQuery")
	}

	session, err := h.service.Load(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]opponent.Stats, len(session.Opponents))
	for _, o := range session.Opponents {
		stats[o.ID] = o.Stats
	}
	return &GetLeaderboardResponse{
		Round:   session.Round.CurrentRound,
		Entries: session.Leaderboard(),
		Stats:   stats,
	}, nil
}
