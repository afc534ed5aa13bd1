// Package storage provides durable document storage for the game: the
// scores ledger, settings and achievements are each one keyed document.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Document keys.
const (
	KeyScores       = "scores"
	KeySettings     = "settings"
	KeyAchievements = "achievements"
)

// ErrNotFound is returned by Read when no document exists for the key.
var ErrNotFound = errors.New("storage: document not found")

// Store reads and writes whole documents by key.
type Store interface {
	// Read returns the document bytes, or ErrNotFound.
	Read(key string) ([]byte, error)
	// Write replaces the document.
	Write(key string, data []byte) error
	// Delete removes the document. Deleting a missing key is not an error.
	Delete(key string) error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens the store for the given backend rooted at dir.
// The JSON backend keeps one file per document; the SQLite backend keeps
// a single twitchy.db file.
func Open(backend, dir string) (Store, error) {
	dir = ExpandHome(dir)
	switch backend {
	case BackendSQLite:
		s, err := OpenSQLite(filepath.Join(dir, "twitchy.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendJSON, "":
		s, err := OpenFiles(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

// Close releases the store if it holds resources.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ExpandHome expands a leading ~ to the home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// MemStore keeps documents in memory. Used for SSH sessions' private
// settings and in tests.
type MemStore struct {
	mu   sync.Mutex
	docs map[string][]byte
	// FailWrites makes every Write fail, for exercising error paths.
	FailWrites error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

// Read returns a copy of the stored document.
func (m *MemStore) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of data.
func (m *MemStore) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.docs[key] = buf
	return nil
}

// Delete removes the document.
func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
