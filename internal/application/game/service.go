package game

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/metrics"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/ledger"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// Service loads a session, applies one operation and persists the result.
// It is the only place where session state meets storage.
type Service struct {
	repo         *Repository
	transactions ledger.TransactionRepository
	clock        shared.Clock
}

// NewService creates a game service. transactions may be nil to disable the ledger.
func NewService(repo *Repository, transactions ledger.TransactionRepository, clock shared.Clock) *Service {
	return &Service{repo: repo, transactions: transactions, clock: clock}
}

// Repository exposes the session repository
func (s *Service) Repository() *Repository {
	return s.repo
}

// Start creates and saves a new session. An existing session with the same
// ID is replaced only when overwrite is set.
func (s *Service) Start(ctx context.Context, id, playerName string, overwrite bool) (*Session, error) {
	logger := logging.LoggerFromContext(ctx)

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		if !overwrite {
			return nil, fmt.Errorf("session %s already exists", id)
		}
		if err := s.discard(ctx, id); err != nil {
			return nil, err
		}
	}

	session, err := s.repo.NewSession(id, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logger.Log(logging.LevelInfo, "Game started", map[string]interface{}{
		"session_id": id,
		"player":     playerName,
		"opponents":  len(session.Opponents),
		"currency":   session.Resources.Currency,
	})
	s.recordStandings(session)
	return session, nil
}

// Reset starts the session over, keeping its player name
func (s *Service) Reset(ctx context.Context, id string) (*Session, error) {
	current, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Start(ctx, id, current.PlayerName, true)
}

func (s *Service) discard(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if s.transactions != nil {
		if err := s.transactions.DeleteBySession(ctx, id); err != nil {
			return fmt.Errorf("failed to delete session transactions: %w", err)
		}
	}
	return nil
}

// Load reads a session, persisting any repairs made while loading
func (s *Service) Load(ctx context.Context, id string) (*Session, error) {
	session, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	session.EnsureReportConsistency()
	s.flushNotes(ctx, session)
	if session.Recovered() {
		if err := s.repo.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save recovered session: %w", err)
		}
	}
	return session, nil
}

// Mutate loads a session, applies fn and saves the session when fn succeeds.
// A failed operation leaves the stored state untouched unless loading repaired it.
func (s *Service) Mutate(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	session, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	opErr := fn(session)
	s.flushNotes(ctx, session)

	if opErr != nil {
		// Operations do not mutate on failure; only repairs made on the way are kept
		if session.Recovered() {
			session.TakePostings()
			if err := s.repo.Save(ctx, session); err != nil {
				return nil, fmt.Errorf("failed to save recovered session: %w", err)
			}
		}
		return session, opErr
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.recordPostings(ctx, session); err != nil {
		return nil, err
	}
	s.recordStandings(session)
	return session, nil
}

func (s *Service) recordPostings(ctx context.Context, session *Session) error {
	postings := session.TakePostings()
	if s.transactions == nil {
		return nil
	}
	// Postings of one operation get strictly increasing timestamps so that
	// timestamp order matches the order the balance changed in
	now := s.clock.Now()
	for i, p := range postings {
		tx, err := ledger.NewTransaction(ledger.TransactionParams{
			SessionID:         session.ID,
			Round:             p.Round,
			Timestamp:         now.Add(time.Duration(i) * time.Microsecond),
			Type:              p.Type,
			Amount:            p.Amount,
			BalanceBefore:     p.BalanceBefore,
			BalanceAfter:      p.BalanceAfter,
			Description:       p.Description,
			RelatedEntityType: p.RelatedEntityType,
			RelatedEntityID:   p.RelatedEntityID,
		})
		if err != nil {
			return fmt.Errorf("failed to build transaction: %w", err)
		}
		if err := s.transactions.Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		metrics.RecordTransaction(session.ID, tx.TransactionType().String(), tx.Category().String(), tx.Amount())
	}
	return nil
}

func (s *Service) recordStandings(session *Session) {
	for _, e := range session.Leaderboard() {
		metrics.RecordActorStanding(session.ID, e.ActorID.String(), e.Rank, e.Resources.Currency, e.Resources.Reputation)
	}
}

func (s *Service) flushNotes(ctx context.Context, session *Session) {
	logger := logging.LoggerFromContext(ctx)
	for _, n := range session.TakeNotes() {
		metadata := n.Metadata
		if metadata == nil {
			metadata = make(map[string]interface{})
		}
		metadata["session_id"] = session.ID
		logger.Log(n.Level, n.Message, metadata)
	}
}
