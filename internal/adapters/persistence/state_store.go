package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// GormStateStore implements ports.StateStore on the game_records table
type GormStateStore struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormStateStore creates a GORM-backed state store
// If clock is nil, uses RealClock (production behavior)
func NewGormStateStore(db *gorm.DB, clock shared.Clock) *GormStateStore {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormStateStore{db: db, clock: clock}
}

// Get returns the record under key
func (s *GormStateStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var model GameRecordModel
	result := s.db.WithContext(ctx).Where("record_key = ?", key).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get record %s: %w", key, result.Error)
	}
	return []byte(model.Value), true, nil
}

// Set upserts the whole record under key
func (s *GormStateStore) Set(ctx context.Context, key string, value []byte) error {
	model := &GameRecordModel{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.clock.Now(),
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to set record %s: %w", key, result.Error)
	}
	return nil
}

// Remove deletes the record under key
func (s *GormStateStore) Remove(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("record_key = ?", key).Delete(&GameRecordModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove record %s: %w", key, result.Error)
	}
	return nil
}

// Keys lists keys starting with prefix
func (s *GormStateStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	result := s.db.WithContext(ctx).
		Model(&GameRecordModel{}).
		Where("record_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("record_key ASC").
		Pluck("record_key", &keys)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list records: %w", result.Error)
	}
	return keys, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("%", `\%`, "_", `\_`).Replace(s)
}

// MemoryStateStore is an in-process ports.StateStore used by tests and dry runs
type MemoryStateStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStateStore creates an empty in-memory store
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{records: make(map[string][]byte)}
}

func (s *MemoryStateStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryStateStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[key] = stored
	return nil
}

func (s *MemoryStateStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

func (s *MemoryStateStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for k := range s.records {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
