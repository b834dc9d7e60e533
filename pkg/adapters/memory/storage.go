// Package memory provides an in-process core.Storage.
// Nothing survives the process; it backs tests and throwaway sessions.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/localnotes/pkg/core"
)

var _ core.Storage = (*Storage)(nil)

// Storage keeps blobs in a map.
type Storage struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	writes int
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return slices.Clone(blob), nil
}

// Set stores a copy of blob under key.
func (s *Storage) Set(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return core.ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if blob == nil {
		blob = []byte{}
	}
	s.blobs[key] = slices.Clone(blob)
	s.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (s *Storage) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Keys   int `json:"keys"`
	Writes int `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StorageState{Keys: len(s.blobs), Writes: s.writes}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory-storage"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
