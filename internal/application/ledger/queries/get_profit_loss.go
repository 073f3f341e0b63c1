package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
)

// GetProfitLossQuery represents a query to generate a profit & loss statement.
// A nil Round covers the whole game.
type GetProfitLossQuery struct {
	SessionID string `validate:"required"`
	Round     *int
}

// GetProfitLossResponse represents the profit & loss statement result
type GetProfitLossResponse struct {
	Period           string
	TotalRevenue     int
	TotalExpenses    int
	NetProfit        int
	RevenueBreakdown map[string]int // category -> amount
	ExpenseBreakdown map[string]int // category -> amount
}

// GetProfitLossHandler handles the GetProfitLoss query
type GetProfitLossHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetProfitLossHandler creates a new GetProfitLossHandler
func NewGetProfitLossHandler(transactionRepo ledger.TransactionRepository) *GetProfitLossHandler {
	return &GetProfitLossHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetProfitLoss query
func (h *GetProfitLossHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetProfitLossQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetProfitLossQuery")
	}

	opts := ledger.QueryOptions{Round: query.Round, Limit: 0}
	transactions, err := h.transactionRepo.FindBySession(ctx, query.SessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	pl := ledger.BuildProfitLoss(transactions)
	period := "all rounds"
	if query.Round != nil {
		period = fmt.Sprintf("round %d", *query.Round)
	}

	return &GetProfitLossResponse{
		Period:           period,
		TotalRevenue:     pl.TotalRevenue,
		TotalExpenses:    pl.TotalExpenses,
		NetProfit:        pl.NetProfit,
		RevenueBreakdown: stringKeys(pl.RevenueBreakdown),
		ExpenseBreakdown: stringKeys(pl.ExpenseBreakdown),
	}, nil
}

func stringKeys(in map[ledger.Category]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k.String()] = v
	}
	return out
}
