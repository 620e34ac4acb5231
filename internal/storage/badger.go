// ABOUTME: Badger key-value store implementation
// ABOUTME: Embedded LSM store for local persistence, logging through zerolog

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
)

// DefaultBadgerDir is the badger directory name inside the data directory.
const DefaultBadgerDir = "badger"

// BadgerStore implements Store on an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

// Compile-time check that BadgerStore implements Store.
var _ Store = (*BadgerStore)(nil)

// NewBadgerStore opens (or creates) a badger database in dir.
func NewBadgerStore(dir string, logger zerolog.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger: logger.With().Str("component", "badger").Logger()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewInMemoryBadgerStore opens a badger database that lives only in memory.
func NewInMemoryBadgerStore(logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{logger: logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *BadgerStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if errors.Is(err, badger.ErrDBClosed) {
		return "", ErrClosed
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return string(value), nil
}

// Set stores value under key.
func (s *BadgerStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if errors.Is(err, badger.ErrDBClosed) {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// badgerLogger adapts zerolog to badger.Logger.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(strings.TrimSpace(format), args...)
}
