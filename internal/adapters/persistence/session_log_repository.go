package persistence

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// SessionLogRepository manages session log persistence
type SessionLogRepository interface {
	// Log writes a log entry with deduplication
	Log(ctx context.Context, sessionID, message, level string, metadata map[string]interface{}) error

	// GetLogs retrieves the newest logs of a session with optional filtering
	GetLogs(ctx context.Context, sessionID string, limit, offset int, level *string, since *time.Time) ([]SessionLogEntry, error)
}

// SessionLogEntry represents a log entry
type SessionLogEntry struct {
	ID        int
	SessionID string
	Timestamp time.Time
	Level     string
	Message   string
	Metadata  map[string]interface{}
}

// GormSessionLogRepository is a GORM-based implementation
type GormSessionLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	// key: sessionID|message, value: last logged time
	dedupCache   map[string]time.Time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormSessionLogRepository creates a new session log repository
// If clock is nil, uses RealClock (production behavior)
func NewGormSessionLogRepository(db *gorm.DB, clock shared.Clock) *GormSessionLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSessionLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  5 * time.Second,
		dedupMaxSize: 10000,
	}
}

// Log writes a log entry with time-windowed deduplication
func (r *GormSessionLogRepository) Log(ctx context.Context, sessionID, message, level string, metadata map[string]interface{}) error {
	now := r.clock.Now()
	cacheKey := sessionID + "|" + message

	r.dedupMu.Lock()
	if lastLogged, exists := r.dedupCache[cacheKey]; exists && now.Sub(lastLogged) < r.dedupWindow {
		r.dedupMu.Unlock()
		return nil
	}
	if len(r.dedupCache) >= r.dedupMaxSize {
		r.cleanupDedupCache(now)
	}
	r.dedupCache[cacheKey] = now
	r.dedupMu.Unlock()

	// Metadata is optional; an unencodable map is dropped
	var metadataJSON string
	if len(metadata) > 0 {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	return r.db.WithContext(ctx).Create(&SessionLogModel{
		SessionID: sessionID,
		Timestamp: now,
		Level:     level,
		Message:   message,
		Metadata:  metadataJSON,
	}).Error
}

// cleanupDedupCache must be called while holding dedupMu
func (r *GormSessionLogRepository) cleanupDedupCache(now time.Time) {
	cutoff := now.Add(-r.dedupWindow)
	for key, timestamp := range r.dedupCache {
		if timestamp.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

// GetLogs retrieves the newest logs of a session with pagination support
func (r *GormSessionLogRepository) GetLogs(ctx context.Context, sessionID string, limit, offset int, level *string, since *time.Time) ([]SessionLogEntry, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if level != nil {
		query = query.Where("level = ?", *level)
	}
	if since != nil {
		query = query.Where("timestamp > ?", *since)
	}
	query = query.Order("timestamp DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var models []SessionLogModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]SessionLogEntry, len(models))
	for i, model := range models {
		var metadata map[string]interface{}
		if model.Metadata != "" {
			if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
				metadata = nil
			}
		}
		entries[i] = SessionLogEntry{
			ID:        model.ID,
			SessionID: model.SessionID,
			Timestamp: model.Timestamp,
			Level:     model.Level,
			Message:   model.Message,
			Metadata:  metadata,
		}
	}
	return entries, nil
}

// SessionLogger adapts a SessionLogRepository to logging.GameLogger for one session
type SessionLogger struct {
	ctx       context.Context
	sessionID string
	repo      SessionLogRepository
	minLevel  int
	echo      bool
}

// NewSessionLogger creates a logger that persists lines at or above minLevel.
// With echo set, lines are also written through the standard logger.
func NewSessionLogger(ctx context.Context, sessionID string, repo SessionLogRepository, minLevel string, echo bool) *SessionLogger {
	return &SessionLogger{
		ctx:       ctx,
		sessionID: sessionID,
		repo:      repo,
		minLevel:  logging.LevelRank(minLevel),
		echo:      echo,
	}
}

// Log implements logging.GameLogger
func (l *SessionLogger) Log(level, message string, metadata map[string]interface{}) {
	if logging.LevelRank(level) < l.minLevel {
		return
	}
	if l.echo {
		log.Printf("[%s] %s %v", level, message, metadata)
	}
	if l.repo == nil {
		return
	}
	if err := l.repo.Log(l.ctx, l.sessionID, message, level, metadata); err != nil {
		log.Printf("failed to persist session log: %v", err)
	}
}
