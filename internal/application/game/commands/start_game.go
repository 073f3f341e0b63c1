package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// StartGameCommand creates a new game session
type StartGameCommand struct {
	SessionID  string `validate:"required"`
	PlayerName string `validate:"max=64"`

	// Overwrite replaces an existing session with the same ID
	Overwrite bool
}

// StartGameResponse carries the fresh session's status
type StartGameResponse struct {
	Status game.Status
}

// StartGameHandler handles the StartGame command
type StartGameHandler struct {
	service *game.Service
}

// NewStartGameHandler creates a new StartGameHandler
func NewStartGameHandler(service *game.Service) *StartGameHandler {
	return &StartGameHandler{service: service}
}

// Handle executes the StartGame command
func (h *StartGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*StartGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartGameCommand")
	}

	session, err := h.service.Start(ctx, cmd.SessionID, cmd.PlayerName, cmd.Overwrite)
	if err != nil {
		return nil, err
	}
	return &StartGameResponse{Status: session.Status()}, nil
}

// ResetGameCommand starts an existing session over, recreating the opponent roster
type ResetGameCommand struct {
	SessionID string `validate:"required"`
}

// ResetGameHandler handles the ResetGame command
type ResetGameHandler struct {
	service *game.Service
}

// NewResetGameHandler creates a new ResetGameHandler
func NewResetGameHandler(service *game.Service) *ResetGameHandler {
	return &ResetGameHandler{service: service}
}

// Handle executes the ResetGame command
func (h *ResetGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ResetGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetGameCommand")
	}

	session, err := h.service.Reset(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	return &StartGameResponse{Status: session.Status()}, nil
}
