package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by a Storage when no blob exists under a key.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for empty or path-like storage keys.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrCorrupt wraps decode failures of the stored collection.
	ErrCorrupt = errors.New("stored notes are corrupt")
	// ErrPersist wraps failed writes of the collection.
	ErrPersist = errors.New("failed to persist notes")
	// ErrUnsupported is returned for unknown codecs and missing storage capabilities.
	ErrUnsupported = errors.New("not supported")
)
