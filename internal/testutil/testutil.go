// Package testutil provides shared test helpers for setting up stores and content directories.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/store"
)

// TestStore creates a temporary SQLite store that is automatically cleaned up.
func TestStore(t *testing.T) *store.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := store.Open(context.Background(), dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestHandle wraps a fresh temporary store in a ready Handle.
func TestHandle(t *testing.T) *store.Handle {
	t.Helper()
	s := TestStore(t)
	h := store.NewHandle(func(context.Context) (*store.Store, error) { return s, nil })
	if _, err := h.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	return h
}

// TestContentDir creates a temporary content directory with a storage.Provider.
func TestContentDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fs
}
