// ABOUTME: Behavioral tests shared by every store backend
// ABOUTME: Runs the same Get/Set/Delete contract against sqlite, badger, and memory

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// testSQLite creates a temporary database for testing.
func testSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// testBadger creates a temporary badger store for testing.
func testBadger(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(filepath.Join(t.TempDir(), "badger"), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create badger store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		BackendSQLite: testSQLite(t),
		BackendBadger: testBadger(t),
		BackendMemory: NewMemoryStore(),
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, MarkersKey, `[{"id":"m1"}]`); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := s.Get(ctx, MarkersKey)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != `[{"id":"m1"}]` {
				t.Errorf("unexpected value %q", got)
			}
		})
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, "k", "first"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "k", "second"); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != "second" {
				t.Errorf("expected last write to win, got %q", got)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, "k", "v"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Delete(ctx, "k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
			if err := s.Delete(ctx, "k"); err != nil {
				t.Errorf("deleting a missing key should not fail: %v", err)
			}
		})
	}
}

func TestStore_EmptyValue(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := s.Set(ctx, "k", ""); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := s.Get(ctx, "k")
			if err != nil {
				t.Fatalf("empty value should still be found: %v", err)
			}
			if got != "" {
				t.Errorf("expected empty value, got %q", got)
			}
		})
	}
}

func TestNewSQLiteDB_CreatesDirectory(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path")

	db, err := NewSQLiteDB(filepath.Join(nestedDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(nestedDir); os.IsNotExist(err) {
		t.Error("nested directory was not created")
	}
}

func TestSQLiteDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, err := NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Set(ctx, MarkersKey, "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = db.Close()

	db, err = NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, err := db.Get(ctx, MarkersKey)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != "[]" {
		t.Errorf("unexpected value %q", got)
	}
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	s, err := NewBadgerStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, MarkersKey, "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = s.Close()

	s, err = NewBadgerStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, MarkersKey)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != "[]" {
		t.Errorf("unexpected value %q", got)
	}
}

func TestBadgerStore_InMemory(t *testing.T) {
	s, err := NewInMemoryBadgerStore(zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := s.Get(ctx, "k"); got != "v" {
		t.Errorf("expected v, got %q", got)
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Close()

	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestMemoryStore_InjectedErrors(t *testing.T) {
	s := NewMemoryStore()
	boom := errors.New("disk full")
	s.SetErr = boom

	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{BackendSQLite, BackendBadger, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, dir, zerolog.Nop())
			if err != nil {
				t.Fatalf("open %s: %v", backend, err)
			}
			defer s.Close()

			if err := s.Set(context.Background(), MarkersKey, "[]"); err != nil {
				t.Errorf("set: %v", err)
			}
		})
	}

	if _, err := Open("postgres", dir, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestBackendPath(t *testing.T) {
	if got := BackendPath(BackendSQLite, "/data"); got != filepath.Join("/data", DefaultDBFilename) {
		t.Errorf("unexpected sqlite path %s", got)
	}
	if got := BackendPath(BackendBadger, "/data"); got != filepath.Join("/data", DefaultBadgerDir) {
		t.Errorf("unexpected badger path %s", got)
	}
	if got := BackendPath(BackendMemory, "/data"); got != "" {
		t.Errorf("memory backend has no path, got %s", got)
	}
}
