package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
)

// PurchaseStockCommand buys the round's inventory
type PurchaseStockCommand struct {
	SessionID string         `validate:"required"`
	Order     map[string]int `validate:"required,min=1,dive,gte=0"`
}

// PurchaseStockResponse is the outcome of stocking
type PurchaseStockResponse struct {
	Purchase game.StockPurchase
	Status   game.Status
}

// PurchaseStockHandler handles the PurchaseStock command
type PurchaseStockHandler struct {
	service *game.Service
}

// NewPurchaseStockHandler creates a new PurchaseStockHandler
func NewPurchaseStockHandler(service *game.Service) *PurchaseStockHandler {
	return &PurchaseStockHandler{service: service}
}

// Handle executes the PurchaseStock command
func (h *PurchaseStockHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PurchaseStockCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PurchaseStockCommand")
	}

	var purchase game.StockPurchase
	session, err := h.service.Mutate(ctx, cmd.SessionID, func(s *game.Session) error {
		var err error
		purchase, err = s.PurchaseStock(cmd.Order)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Stock purchased", map[string]interface{}{
		"session_id": cmd.SessionID,
		"round":      session.Round.CurrentRound,
		"cost":       purchase.Cost,
		"currency":   purchase.Currency,
	})
	return &PurchaseStockResponse{Purchase: purchase, Status: session.Status()}, nil
}
