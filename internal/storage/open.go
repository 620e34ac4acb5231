// ABOUTME: Store factory selecting a backend by name
// ABOUTME: Lays out backend files inside the data directory

package storage

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open creates the Store for backend inside dataDir.
func Open(backend, dataDir string, logger zerolog.Logger) (Store, error) {
	switch backend {
	case "", BackendSQLite:
		return NewSQLiteDB(filepath.Join(dataDir, DefaultDBFilename))
	case BackendBadger:
		return NewBadgerStore(filepath.Join(dataDir, DefaultBadgerDir), logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// BackendPath returns where backend keeps its files inside dataDir, or ""
// for backends with nothing on disk.
func BackendPath(backend, dataDir string) string {
	switch backend {
	case "", BackendSQLite:
		return filepath.Join(dataDir, DefaultDBFilename)
	case BackendBadger:
		return filepath.Join(dataDir, DefaultBadgerDir)
	default:
		return ""
	}
}
