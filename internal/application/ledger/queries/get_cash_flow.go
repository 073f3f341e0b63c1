package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
)

// GetCashFlowQuery represents a query for per-round cash flow of a session
type GetCashFlowQuery struct {
	SessionID string `validate:"required"`
}

// GetCashFlowResponse lists cash flow per round, oldest first
type GetCashFlowResponse struct {
	Rounds []*RoundCashFlow
}

// RoundCashFlow is the money in and out during one round
type RoundCashFlow struct {
	Round          int
	TotalInflow    int
	TotalOutflow   int
	NetFlow        int
	Transactions   int
	ClosingBalance int
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	transactions, err := h.transactionRepo.FindBySession(ctx, query.SessionID, ledger.QueryOptions{
		Limit:   0,
		OrderBy: "timestamp ASC",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	byRound := make(map[int]*RoundCashFlow)
	for _, tx := range transactions {
		flow, exists := byRound[tx.Round()]
		if !exists {
			flow = &RoundCashFlow{Round: tx.Round()}
			byRound[tx.Round()] = flow
		}
		if tx.IsIncome() {
			flow.TotalInflow += tx.Amount()
		} else {
			flow.TotalOutflow += -tx.Amount()
		}
		flow.Transactions++
		flow.ClosingBalance = tx.BalanceAfter()
	}

	rounds := make([]*RoundCashFlow, 0, len(byRound))
	for _, flow := range byRound {
		flow.NetFlow = flow.TotalInflow - flow.TotalOutflow
		rounds = append(rounds, flow)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })

	return &GetCashFlowResponse{Rounds: rounds}, nil
}
