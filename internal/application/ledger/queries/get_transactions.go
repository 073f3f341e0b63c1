package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/bakerysim-go/internal/application/mediator"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
)

// GetTransactionsQuery lists a session's ledger lines, newest first unless
// Oldest is set. Empty filters match everything.
type GetTransactionsQuery struct {
	SessionID string `validate:"required"`
	Round     *int
	Category  string
	Type      string
	// EventID keeps only the lines an event produced (its effect and sales)
	EventID string
	Limit   int `validate:"gte=0"`
	Offset  int `validate:"gte=0"`
	Oldest  bool
}

// GetTransactionsResponse is one page of ledger lines plus the unpaged count
type GetTransactionsResponse struct {
	Transactions []TransactionLine
	Total        int
}

// TransactionLine is a ledger transaction flattened for display
type TransactionLine struct {
	ID            string
	Round         int
	Timestamp     time.Time
	Type          string
	Category      string
	Amount        int
	BalanceBefore int
	BalanceAfter  int
	Description   string
	// Subject names what the money moved for, e.g. "event:res-01"
	Subject string
}

type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
}

func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{transactionRepo: transactionRepo}
}

func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}

	opts, err := query.options()
	if err != nil {
		return nil, err
	}

	found, err := h.transactionRepo.FindBySession(ctx, query.SessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	total, err := h.transactionRepo.CountBySession(ctx, query.SessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	lines := make([]TransactionLine, 0, len(found))
	for _, tx := range found {
		lines = append(lines, lineOf(tx))
	}
	return &GetTransactionsResponse{Transactions: lines, Total: total}, nil
}

func (q *GetTransactionsQuery) options() (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()
	opts.Round = q.Round
	opts.Offset = q.Offset
	if q.Limit > 0 {
		opts.Limit = q.Limit
	}
	if q.Oldest {
		opts.OrderBy = "timestamp ASC"
	}

	if q.Category != "" {
		c, err := ledger.ParseCategory(q.Category)
		if err != nil {
			return opts, fmt.Errorf("invalid category: %w", err)
		}
		opts.Category = &c
	}
	if q.Type != "" {
		t, err := ledger.ParseTransactionType(q.Type)
		if err != nil {
			return opts, fmt.Errorf("invalid transaction type: %w", err)
		}
		opts.TransactionType = &t
	}
	if q.EventID != "" {
		entity, id := "event", q.EventID
		opts.RelatedEntityType = &entity
		opts.RelatedEntityID = &id
	}
	return opts, nil
}

func lineOf(tx *ledger.Transaction) TransactionLine {
	line := TransactionLine{
		ID:            tx.ID().String(),
		Round:         tx.Round(),
		Timestamp:     tx.Timestamp(),
		Type:          tx.TransactionType().String(),
		Category:      tx.Category().String(),
		Amount:        tx.Amount(),
		BalanceBefore: tx.BalanceBefore(),
		BalanceAfter:  tx.BalanceAfter(),
		Description:   tx.Description(),
	}
	if tx.RelatedEntityType() != "" {
		line.Subject = tx.RelatedEntityType() + ":" + tx.RelatedEntityID()
	}
	return line
}
