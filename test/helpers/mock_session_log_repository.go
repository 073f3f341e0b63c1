package helpers

import (
	"context"
	"sync"
	"time"

	"github.com/andrescamacho/bakerysim-go/internal/adapters/persistence"
)

// MockSessionLogRepository is an in-memory implementation of SessionLogRepository for testing
type MockSessionLogRepository struct {
	mu     sync.Mutex
	Logs   map[string][]persistence.SessionLogEntry // key: session_id
	LogErr error
}

// NewMockSessionLogRepository creates a new mock session log repository
func NewMockSessionLogRepository() *MockSessionLogRepository {
	return &MockSessionLogRepository{
		Logs: make(map[string][]persistence.SessionLogEntry),
	}
}

// Log writes a log entry (in-memory only for testing)
func (m *MockSessionLogRepository) Log(ctx context.Context, sessionID, message, level string, metadata map[string]interface{}) error {
	if m.LogErr != nil {
		return m.LogErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs[sessionID] = append(m.Logs[sessionID], persistence.SessionLogEntry{
		SessionID: sessionID,
		Message:   message,
		Level:     level,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
	return nil
}

// GetLogs returns newest-first logs with optional filtering
func (m *MockSessionLogRepository) GetLogs(ctx context.Context, sessionID string, limit, offset int, level *string, since *time.Time) ([]persistence.SessionLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := []persistence.SessionLogEntry{}
	logs := m.Logs[sessionID]
	for i := len(logs) - 1; i >= 0; i-- {
		entry := logs[i]
		if level != nil && entry.Level != *level {
			continue
		}
		if since != nil && entry.Timestamp.Before(*since) {
			continue
		}
		filtered = append(filtered, entry)
	}

	if offset >= len(filtered) {
		return []persistence.SessionLogEntry{}, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// Messages returns the logged messages of a session in order
func (m *MockSessionLogRepository) Messages(sessionID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Logs[sessionID]))
	for _, e := range m.Logs[sessionID] {
		out = append(out, e.Message)
	}
	return out
}
