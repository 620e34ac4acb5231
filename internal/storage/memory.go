// ABOUTME: In-memory key-value store
// ABOUTME: Used by tests and the --ephemeral flag; nothing survives the process

package storage

import (
	"context"
	"sync"
)

// MemoryStore implements Store with a mutex-guarded map.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool

	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
	// GetErr, when non-nil, is returned by every Get call.
	GetErr error
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", ErrClosed
	}
	if s.GetErr != nil {
		return "", s.GetErr
	}
	value, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.SetErr != nil {
		return s.SetErr
	}
	s.data[key] = value
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.data, key)
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
