package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultKey is the storage key of the note collection.
// Changing it orphans existing data.
const DefaultKey = "localnotes-data-v1"

// maxIDAttempts bounds regeneration when an injected generator collides.
const maxIDAttempts = 8

// options holds the configuration of a Store.
type options struct {
	key          string
	codec        Codec
	clock        Clock
	newID        func() string
	logger       *slog.Logger
	errorHandler func(error)
}

// Option configures a Store.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		key:    DefaultKey,
		codec:  JSONCodec{},
		clock:  SystemClock,
		newID:  uuid.NewString,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithKey sets the storage key the collection lives under.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithCodec sets the serialization format. Defaults to JSONCodec.
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithClock injects the time source used for UpdatedAt.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithIDGenerator replaces the UUID generator used by Create.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithErrorHandler registers a callback for non-fatal failures: corrupt data
// found on load and failed writes. It is called without the Store lock held.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// Store owns the ordered note collection and keeps the storage in sync with
// it. Every mutation rewrites the whole collection under a single key before
// returning (write-through). A failed write is reported but never rolls back
// the in-memory change.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	opts    options

	notes       []Note
	inSync      bool
	lastBlob    []byte // last blob read from or written to storage
	lastPersist time.Time
	lastErr     error
}

// Open creates a Store on top of storage and loads the collection.
// Absent, unreadable or corrupt data yields an empty collection; Open only
// fails on invalid arguments.
func Open(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, errors.New("open store: storage is nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.key == "" {
		return nil, fmt.Errorf("open store: %w", ErrInvalidKey)
	}

	s := &Store{
		storage: storage,
		opts:    *o,
		inSync:  true,
	}

	notes, data, loadErr := s.load(ctx)
	s.notes = notes
	s.lastBlob = data
	s.lastErr = loadErr
	s.report(loadErr)

	return s, nil
}

// load reads and decodes the collection and returns it with the raw blob.
// The returned error is only meant for reporting; the returned notes are
// always usable.
func (s *Store) load(ctx context.Context) ([]Note, []byte, error) {
	log := s.opts.logger.With("key", s.opts.key)

	data, err := s.storage.Get(ctx, s.opts.key)
	if errors.Is(err, ErrNotFound) {
		log.Debug("no stored notes, starting empty")
		return []Note{}, nil, nil
	}
	if err != nil {
		log.Warn("storage unreadable, starting empty", "error", err)
		return []Note{}, nil, nil
	}

	notes, err := s.opts.codec.Decode(data)
	if notes == nil {
		if err == nil {
			err = errors.New("no records")
		}
		err = fmt.Errorf("%w: %s: %w", ErrCorrupt, s.opts.key, err)
		log.Error("discarding unparseable notes", "bytes", len(data), "error", err)
		return []Note{}, data, err
	}
	if err != nil {
		log.Warn("some stored fields could not be read, keeping the rest", "error", err)
	}

	notes = s.repair(notes)
	log.Debug("notes loaded", "count", len(notes))
	return notes, data, nil
}

// repair drops records that cannot be addressed: empty ids and repeated ids
// (the first occurrence wins). Other fields are accepted as decoded.
func (s *Store) repair(notes []Note) []Note {
	seen := make(map[string]struct{}, len(notes))
	out := make([]Note, 0, len(notes))
	for i, n := range notes {
		if n.ID == "" {
			s.opts.logger.Warn("dropping stored note without id", "index", i)
			continue
		}
		if _, dup := seen[n.ID]; dup {
			s.opts.logger.Warn("dropping stored note with duplicate id", "index", i, "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Create inserts an empty note at the front of the collection, persists it
// and returns its id.
func (s *Store) Create(ctx context.Context) string {
	s.mu.Lock()
	id := s.allocateID()
	s.notes = slices.Insert(s.notes, 0, Note{ID: id, UpdatedAt: s.now()})
	err := s.persistLocked(ctx, "create", id)
	s.mu.Unlock()

	s.report(err)
	return id
}

func (s *Store) allocateID() string {
	id := s.opts.newID()
	for attempt := 1; attempt < maxIDAttempts && s.indexLocked(id) >= 0; attempt++ {
		id = s.opts.newID()
	}
	if s.indexLocked(id) >= 0 {
		// The injected generator keeps colliding; a UUID cannot.
		id = uuid.NewString()
	}
	return id
}

// Update replaces the fields set in p on the note with the given id and
// refreshes its UpdatedAt, keeping its position. It reports whether the note
// exists; an unknown id is a no-op.
func (s *Store) Update(ctx context.Context, id string, p Patch) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.opts.logger.Debug("update ignored, note not found", "id", id)
		return false
	}

	n := &s.notes[i]
	p.apply(n)
	n.UpdatedAt = max(s.now(), n.UpdatedAt)
	err := s.persistLocked(ctx, "update", id)
	s.mu.Unlock()

	s.report(err)
	return true
}

// Delete removes the note with the given id, preserving the order of the
// others. It reports whether the note existed; an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.opts.logger.Debug("delete ignored, note not found", "id", id)
		return false
	}

	s.notes = slices.Delete(s.notes, i, i+1)
	err := s.persistLocked(ctx, "delete", id)
	s.mu.Unlock()

	s.report(err)
	return true
}

// List returns the collection in stored order (most recently created first).
func (s *Store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i], true
	}
	return Note{}, false
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Search returns, in stored order, the notes whose title or content contains
// term, ignoring case. An empty term matches every note.
func (s *Store) Search(term string) []Note {
	if term == "" {
		return s.List()
	}
	needle := strings.ToLower(term)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, 0)
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
	}
	return out
}

// Flush writes the current collection again, e.g. after a reported write
// failure. Unlike the mutating methods it returns the write error.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	err := s.persistLocked(ctx, "flush", "all")
	s.mu.Unlock()

	s.report(err)
	return err
}

// Reload replaces the in-memory collection with the stored one, applying the
// same recovery rules as Open.
//
// Changes whose write failed are never discarded: while the store is out of
// sync, Reload writes the collection again instead of reading, and returns
// the write error if that fails too. Otherwise it only fails when ctx is
// already done.
func (s *Store) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.inSync {
		err := s.persistLocked(ctx, "reload", "all")
		s.mu.Unlock()
		if err == nil {
			s.opts.logger.Warn("stored notes replaced by unsaved changes", "key", s.opts.key)
		}
		s.report(err)
		return err
	}
	s.mu.Unlock()

	notes, data, loadErr := s.load(ctx)

	s.mu.Lock()
	if !s.inSync {
		// A mutation failed to persist while we were reading; keep it.
		s.mu.Unlock()
		s.report(loadErr)
		return nil
	}
	s.notes = notes
	s.lastBlob = data
	s.lastErr = loadErr
	s.mu.Unlock()

	s.report(loadErr)
	return nil
}

// Modified reports whether the stored blob differs from the one this store
// last read or wrote, i.e. whether another writer changed it.
func (s *Store) Modified(ctx context.Context) (bool, error) {
	data, err := s.storage.Get(ctx, s.opts.key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return !bytes.Equal(data, s.lastBlob), nil
}

// InSync reports whether the last write succeeded, i.e. whether the stored
// collection holds every change made through this store.
func (s *Store) InSync() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inSync
}

// Watch observes out-of-process changes of the collection key.
// The storage must implement Watchable.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, fmt.Errorf("watch: %w", ErrUnsupported)
	}
	return w.Watch(ctx, s.opts.key)
}

func (s *Store) persistLocked(ctx context.Context, op, id string) error {
	data, err := s.opts.codec.Encode(s.notes)
	if err == nil {
		err = s.storage.Set(ctx, s.opts.key, data)
	}
	if err != nil {
		err = fmt.Errorf("%w: %s %s: %w", ErrPersist, op, id, err)
		s.inSync = false
		s.lastErr = err
		s.opts.logger.Error("notes not persisted, stored copy is stale",
			"op", op, "id", id, "key", s.opts.key, "error", err)
		return err
	}

	s.inSync = true
	s.lastErr = nil
	s.lastBlob = data
	s.lastPersist = s.opts.clock.Now()
	s.opts.logger.Debug("notes persisted",
		"op", op, "id", id, "count", len(s.notes), "bytes", len(data))
	return nil
}

func (s *Store) report(err error) {
	if err != nil && s.opts.errorHandler != nil {
		s.opts.errorHandler(err)
	}
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

func (s *Store) now() int64 {
	return s.opts.clock.Now().UnixMilli()
}
