// ABOUTME: Data migration between marker storage backends
// ABOUTME: Copies the marker collection blob from source to destination store

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/harper/geomark/internal/models"
)

// MigrateSummary holds the outcome of a migration.
type MigrateSummary struct {
	Markers int
	Bytes   int
}

// MigrateData copies the marker collection from src to dst. The blob is
// validated as a marker array before it is written. A missing source
// collection migrates nothing and is not an error.
func MigrateData(ctx context.Context, src, dst Store) (*MigrateSummary, error) {
	blob, err := src.Get(ctx, MarkersKey)
	if errors.Is(err, ErrNotFound) {
		return &MigrateSummary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	var markers []*models.Marker
	if err := json.Unmarshal([]byte(blob), &markers); err != nil {
		return nil, fmt.Errorf("source collection is corrupt: %w", err)
	}

	if err := dst.Set(ctx, MarkersKey, blob); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	return &MigrateSummary{Markers: len(markers), Bytes: len(blob)}, nil
}

// HasCollection reports whether the store already holds a marker collection.
func HasCollection(ctx context.Context, s Store) (bool, error) {
	_, err := s.Get(ctx, MarkersKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
