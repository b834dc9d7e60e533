package platform

import (
	"log/slog"

	"github.com/aretw0/localnotes/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
)

// options holds the internal configuration for building a Store.
type options struct {
	storage      core.Storage
	adapter      string
	format       string
	key          string
	clock        core.Clock
	idGenerator  func() string
	logger       *slog.Logger
	errorHandler func(error)
	mustExist    bool
	forceTemp    bool
	devSafety    bool
}

// Option defines a functional option for configuring the notes store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		format:    "json",
		key:       core.DefaultKey,
		devSafety: true,
	}
}

func resolveOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStorage injects a custom storage (e.g. a fake in tests).
// If provided, the adapter setting is ignored.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFormat selects the codec by name ("json" or "yaml").
// With the fs adapter it also decides the data file extension.
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithKey sets the storage key of the note collection.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithClock injects the time source for note timestamps.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.idGenerator = fn
	}
}

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithErrorHandler registers a callback for non-fatal failures (corrupt data
// on load, failed writes, watcher errors).
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the data directory into the system temp dir.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the data directory is redirected to a temp
// location so development runs cannot touch real notes.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
