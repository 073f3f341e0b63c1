package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// TestRepositories holds real repository instances for integration tests
type TestRepositories struct {
	DB              *gorm.DB
	Store           *persistence.GormStateStore
	TransactionRepo *persistence.GormTransactionRepository
	SessionLogRepo  *persistence.GormSessionLogRepository
	Sessions        *game.Repository
	Service         *game.Service
}

// NewTestRepositories wires GORM repositories and the game service over db.
// clock is usually a MockClock in tests.
func NewTestRepositories(db *gorm.DB, content game.Content, settings game.Settings, clock shared.Clock) *TestRepositories {
	store := persistence.NewGormStateStore(db, clock)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	sessions := game.NewRepository(store, content, settings, clock)

	return &TestRepositories{
		DB:              db,
		Store:           store,
		TransactionRepo: transactionRepo,
		SessionLogRepo:  persistence.NewGormSessionLogRepository(db, clock),
		Sessions:        sessions,
		Service:         game.NewService(sessions, transactionRepo, clock),
	}
}

// NewMemoryService wires the game service over an in-memory store without a ledger
func NewMemoryService(content game.Content, settings game.Settings, clock shared.Clock) *game.Service {
	sessions := game.NewRepository(persistence.NewMemoryStateStore(), content, settings, clock)
	return game.NewService(sessions, nil, clock)
}
