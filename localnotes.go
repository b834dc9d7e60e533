package localnotes

import (
	"context"
	"log/slog"

	"github.com/aretw0/localnotes/internal/platform"
	"github.com/aretw0/localnotes/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Patch is a public alias for a partial note update.
type Patch = core.Patch

// Store is a public alias for the note store.
type Store = core.Store

// Storage is a public alias for the persistence port.
type Storage = core.Storage

// Config is the resolved CLI configuration.
type Config = platform.Config

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput = platform.LoadConfigInput

// DefaultKey is the storage key used when none is configured.
const DefaultKey = core.DefaultKey

// --- Configuration ---

// Option defines a functional option for configuring the store.
type Option = platform.Option

// WithStorage injects a custom storage backend.
func WithStorage(s Storage) Option {
	return platform.WithStorage(s)
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the serialization format ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithKey sets the storage key of the collection.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithClock injects the time source for note timestamps.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithErrorHandler registers a callback for non-fatal failures.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the dev sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New opens a note store at the given location.
func New(ctx context.Context, uri string, opts ...Option) (*Store, error) {
	return platform.New(ctx, uri, opts...)
}

// Init prepares a storage backend without opening a store.
func Init(ctx context.Context, uri string, opts ...Option) (Storage, error) {
	return platform.Init(ctx, uri, opts...)
}

// LoadConfig resolves configuration from files, environment and overrides.
func LoadConfig(input LoadConfigInput) (Config, error) {
	return platform.LoadConfig(input)
}

// --- Safety & Utils ---

// ResolveDataDir determines the actual data directory based on safety rules.
func ResolveDataDir(userPath string, forceTemp bool) string {
	return platform.ResolveDataDir(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
