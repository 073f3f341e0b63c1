package game

import "github.com/andrescamacho/bakerysim-go/internal/domain/ledger"

// Posting is a pending ledger entry produced by a session operation.
// The service turns postings into ledger transactions once the session is saved.
type Posting struct {
	Round             int
	Type              ledger.TransactionType
	Amount            int
	BalanceBefore     int
	BalanceAfter      int
	Description       string
	RelatedEntityType string
	RelatedEntityID   string
}

func (s *Session) post(p Posting) {
	if p.Amount == 0 {
		return
	}
	s.postings = append(s.postings, p)
}

// TakePostings returns and clears the pending postings
func (s *Session) TakePostings() []Posting {
	out := s.postings
	s.postings = nil
	return out
}
