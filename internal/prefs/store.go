// Package prefs persists the small set of string preferences the dashboard
// keeps between sessions (theme selection and the auto-theme switch). The
// Store abstraction is injected wherever preferences are needed; nothing
// reads ambient global state.
package prefs

import (
	"errors"
	"sync"
)

// Fixed preference keys.
const (
	KeyTheme     = "theme"
	KeyAutoTheme = "autoTheme"
)

// ErrNotFound is returned when a key has never been set.
var ErrNotFound = errors.New("preference not found")

// Store is a minimal key-value contract for preference persistence.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MemoryStore is a concurrency-safe in-memory Store, used in tests and when
// no durable path is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the stored value for key, or ErrNotFound.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}
