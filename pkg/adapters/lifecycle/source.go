// Package lifecycle exposes note storage changes as a lifecycle.Source.
package lifecycle

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/localnotes/pkg/core"
)

// Filter decides whether an event is forwarded.
type Filter func(ctx context.Context, e core.Event) bool

// Option configures a Source.
type Option func(*Source)

// WithKey forwards only events for key.
func WithKey(key string) Option {
	return func(s *Source) {
		s.key = key
	}
}

// WithFilter adds a predicate run after the key check.
func WithFilter(fn Filter) Option {
	return func(s *Source) {
		s.filters = append(s.filters, fn)
	}
}

// ChangedOnly drops events that do not leave the stored collection different
// from what store last read or wrote, such as the echo of its own writes.
// Events are kept when the check itself fails.
func ChangedOnly(store *core.Store) Option {
	return WithFilter(func(ctx context.Context, e core.Event) bool {
		modified, err := store.Modified(ctx)
		return err != nil || modified
	})
}

// Source bridges storage events to the lifecycle.Event interface.
// core.Event satisfies lifecycle.Event through its String method.
type Source struct {
	events  <-chan core.Event
	out     chan lifecycle.Event
	key     string
	filters []Filter

	mu        sync.Mutex
	forwarded int
	dropped   int
}

var _ lifecycle.Source = (*Source)(nil)

// NewSource creates a Source reading from events.
func NewSource(events <-chan core.Event, opts ...Option) *Source {
	s := &Source{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards accepted events until ctx is done or the input channel
// closes, then closes the output channel.
func (s *Source) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accept(ctx, e) {
					s.count(false)
					continue
				}
				select {
				case s.out <- e:
					s.count(true)
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func (s *Source) accept(ctx context.Context, e core.Event) bool {
	if s.key != "" && e.Key != s.key {
		return false
	}
	for _, f := range s.filters {
		if !f(ctx, e) {
			return false
		}
	}
	return true
}

func (s *Source) count(forwarded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if forwarded {
		s.forwarded++
	} else {
		s.dropped++
	}
}

// SourceState exposes internal state for observability.
type SourceState struct {
	Key       string `json:"key,omitempty"`
	Forwarded int    `json:"forwarded"`
	Dropped   int    `json:"dropped"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SourceState{Key: s.key, Forwarded: s.forwarded, Dropped: s.dropped}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "event-source"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)
