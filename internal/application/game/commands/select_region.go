package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// SelectRegionCommand opens the round in a region and district
type SelectRegionCommand struct {
	SessionID  string `validate:"required"`
	RegionType string `validate:"required"`
	District   string `validate:"required"`
}

// SelectRegionResponse is the outcome of region selection
type SelectRegionResponse struct {
	Selection game.RegionSelection
	Status    game.Status
}

// SelectRegionHandler handles the SelectRegion command
type SelectRegionHandler struct {
	service *game.Service
}

// NewSelectRegionHandler creates a new SelectRegionHandler
func NewSelectRegionHandler(service *game.Service) *SelectRegionHandler {
	return &SelectRegionHandler{service: service}
}

// Handle executes the SelectRegion command
func (h *SelectRegionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SelectRegionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SelectRegionCommand")
	}

	var selection game.RegionSelection
	session, err := h.service.Mutate(ctx, cmd.SessionID, func(s *game.Session) error {
		var err error
		selection, err = s.SelectRegion(cmd.RegionType, cmd.District)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Region selected", map[string]interface{}{
		"session_id":  cmd.SessionID,
		"round":       session.Round.CurrentRound,
		"region_type": selection.RegionType,
		"district":    selection.District,
		"rent":        selection.Rent,
		"currency":    selection.Currency,
	})
	return &SelectRegionResponse{Selection: selection, Status: session.Status()}, nil
}
