package core

import "context"

// Storage is the durable key-value collaborator of the Store.
// It holds opaque blobs under string keys. Adhering to this interface keeps
// the core independent of the medium (filesystem, memory, browser storage).
type Storage interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the blob stored under key.
	Set(ctx context.Context, key string, blob []byte) error
}

// Watchable is implemented by storages that can report out-of-process changes.
type Watchable interface {
	// Watch emits an Event for each change of a key matching pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
