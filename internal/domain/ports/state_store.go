package ports

import "context"

// StateStore is the durable key-value store holding game records.
//
// This interface is defined in the domain layer so the game session can be
// persisted without knowing the storage engine:
//
//	┌─────────────────────────┐
//	│  Application Layer      │
//	│  (game service)         │
//	└───────────┬─────────────┘
//	            │ depends on
//	            ↓
//	┌─────────────────────────┐
//	│  Domain Ports           │  ← This interface
//	└───────────┬─────────────┘
//	            ↑
//	            │ implements
//	┌─────────────────────────┐
//	│  Adapters               │
//	│  (GORM, in-memory)      │
//	└─────────────────────────┘
//
// Each value is one whole logical record. Writes replace the full record;
// there are no partial updates.
type StateStore interface {
	// Get returns the record under key; found is false when it does not exist
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores the full record under key
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the record; removing a missing key is not an error
	Remove(ctx context.Context, key string) error

	// Keys lists the keys starting with prefix
	Keys(ctx context.Context, prefix string) ([]string, error)
}
