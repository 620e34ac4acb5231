// ABOUTME: Key-value store interface for marker persistence
// ABOUTME: Enables testability and storage backend swapping

package storage

import "context"

// MarkersKey is the single key under which the whole marker collection is
// stored as a JSON array.
const MarkersKey = "savedMarkers"

// Store is an opaque string-keyed persistent store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)
