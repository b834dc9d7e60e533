package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key          string     `json:"key"`
	Codec        string     `json:"codec"`
	Notes        int        `json:"notes"`
	InSync       bool       `json:"in_sync"`
	LastPersist  *time.Time `json:"last_persist,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
	StorageType  string     `json:"storage_type"`
	StorageState any        `json:"storage_state,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := StoreState{
		Key:         s.opts.key,
		Codec:       s.opts.codec.Name(),
		Notes:       len(s.notes),
		InSync:      s.inSync,
		StorageType: "storage",
	}
	if !s.lastPersist.IsZero() {
		t := s.lastPersist
		state.LastPersist = &t
	}
	if s.lastErr != nil {
		state.LastError = s.lastErr.Error()
	}

	if comp, ok := s.storage.(introspection.Component); ok {
		state.StorageType = comp.ComponentType()
	}
	if intro, ok := s.storage.(introspection.Introspectable); ok {
		state.StorageState = intro.State()
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
