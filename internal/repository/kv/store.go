package kv

import (
	"context"
	"errors"
	"sync"
)

// Store is a minimal string key-value store.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

var (
	// ErrNotFound is returned when nothing is stored under the key yet.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys that cannot be mapped to a file name.
	ErrInvalidKey = errors.New("invalid key")
)

// MemoryStore keeps values in a map.
type MemoryStore struct {
	// values holds the stored documents by key.
	values map[string]string
	// mu protects values.
	mu sync.RWMutex
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}

	return value, nil
}

// Set replaces the value stored under key.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}
