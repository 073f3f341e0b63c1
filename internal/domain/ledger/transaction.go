package ledger

import (
	"fmt"
	"time"
)

// Transaction is an immutable record of one change to the player's currency
type Transaction struct {
	id                TransactionID
	sessionID         string
	round             int
	timestamp         time.Time
	transactionType   TransactionType
	category          Category
	amount            int // Positive for income, negative for expenses
	balanceBefore     int
	balanceAfter      int
	description       string
	metadata          map[string]interface{}
	relatedEntityType string // "region", "stock", "event"
	relatedEntityID   string
}

// TransactionParams are the inputs of NewTransaction
type TransactionParams struct {
	SessionID         string
	Round             int
	Timestamp         time.Time
	Type              TransactionType
	Amount            int
	BalanceBefore     int
	BalanceAfter      int
	Description       string
	Metadata          map[string]interface{}
	RelatedEntityType string
	RelatedEntityID   string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(p TransactionParams) (*Transaction, error) {
	if p.SessionID == "" {
		return nil, &ErrInvalidTransaction{Field: "session_id", Reason: "session_id cannot be empty"}
	}
	if p.Round < 1 {
		return nil, &ErrInvalidTransaction{Field: "round", Reason: fmt.Sprintf("round must be >= 1, got %d", p.Round)}
	}

	category, err := p.Type.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "transaction_type", Reason: err.Error()}
	}

	t := &Transaction{
		id:                NewTransactionID(),
		sessionID:         p.SessionID,
		round:             p.Round,
		timestamp:         p.Timestamp,
		transactionType:   p.Type,
		category:          category,
		amount:            p.Amount,
		balanceBefore:     p.BalanceBefore,
		balanceAfter:      p.BalanceAfter,
		description:       p.Description,
		metadata:          p.Metadata,
		relatedEntityType: p.RelatedEntityType,
		relatedEntityID:   p.RelatedEntityID,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(id TransactionID, category Category, p TransactionParams) *Transaction {
	return &Transaction{
		id:                id,
		sessionID:         p.SessionID,
		round:             p.Round,
		timestamp:         p.Timestamp,
		transactionType:   p.Type,
		category:          category,
		amount:            p.Amount,
		balanceBefore:     p.BalanceBefore,
		balanceAfter:      p.BalanceAfter,
		description:       p.Description,
		metadata:          p.Metadata,
		relatedEntityType: p.RelatedEntityType,
		relatedEntityID:   p.RelatedEntityID,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{Field: "amount", Reason: "amount cannot be zero"}
	}

	// balance_after must equal balance_before + amount
	expected := t.balanceBefore + t.amount
	if t.balanceAfter != expected {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.timestamp.IsZero() {
		return &ErrInvalidTransaction{Field: "timestamp", Reason: "timestamp cannot be zero"}
	}
	return nil
}

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) SessionID() string {
	return t.sessionID
}

func (t *Transaction) Round() int {
	return t.round
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) Category() Category {
	return t.category
}

func (t *Transaction) Amount() int {
	return t.amount
}

func (t *Transaction) BalanceBefore() int {
	return t.balanceBefore
}

func (t *Transaction) BalanceAfter() int {
	return t.balanceAfter
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) Metadata() map[string]interface{} {
	if t.metadata == nil {
		return nil
	}
	out := make(map[string]interface{}, len(t.metadata))
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}

func (t *Transaction) RelatedEntityType() string {
	return t.relatedEntityType
}

func (t *Transaction) RelatedEntityID() string {
	return t.relatedEntityID
}

// IsIncome returns true if the transaction represents income
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

// IsExpense returns true if the transaction represents an expense
func (t *Transaction) IsExpense() bool {
	return t.amount < 0
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, round=%d, type=%s, amount=%d, balance=%d->%d]",
		t.id.String(), t.round, t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
