package ledger

import (
	"context"
	"time"
)

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	// Create persists a new transaction
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID retrieves a transaction of a session by its ID
	FindByID(ctx context.Context, id TransactionID, sessionID string) (*Transaction, error)

	// FindBySession retrieves transactions of a session with optional filtering
	FindBySession(ctx context.Context, sessionID string, opts QueryOptions) ([]*Transaction, error)

	// CountBySession returns the count of transactions matching the criteria
	CountBySession(ctx context.Context, sessionID string, opts QueryOptions) (int, error)

	// DeleteBySession removes every transaction of a session (full game reset)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	StartDate *time.Time
	EndDate   *time.Time

	// Round restricts results to one game round
	Round *int

	Category        *Category
	TransactionType *TransactionType

	RelatedEntityType *string
	RelatedEntityID   *string

	// Pagination; Limit 0 means unlimited
	Limit  int
	Offset int

	// "timestamp ASC" or "timestamp DESC" (default DESC)
	OrderBy string
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "timestamp DESC",
	}
}
