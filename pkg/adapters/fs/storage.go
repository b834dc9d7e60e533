// Package fs implements core.Storage on the local filesystem.
//
// Each key is one file inside a data directory. Writes replace the file
// atomically (temp file + rename), so a crash leaves either the old or the
// new collection on disk, never a torn one.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/localnotes/pkg/core"
)

const (
	// DefaultExt is appended to keys to form file names.
	DefaultExt = ".json"

	filePerm = 0o644
	dirPerm  = 0o755
)

var (
	_ core.Storage   = (*Storage)(nil)
	_ core.Watchable = (*Storage)(nil)
)

// Config holds the configuration for the filesystem storage.
type Config struct {
	Dir          string
	Ext          string // File extension for keys, defaults to DefaultExt.
	MustExist    bool   // Fail Initialize instead of creating Dir.
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher failures.
}

// Storage implements core.Storage using one file per key.
type Storage struct {
	Dir    string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// NewStorage creates a filesystem-backed storage. Call Initialize before use.
func NewStorage(config Config) *Storage {
	if config.Ext == "" {
		config.Ext = DefaultExt
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Storage{
		Dir:    config.Dir,
		config: config,
	}
}

// Initialize ensures the data directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("data directory does not exist: %s", s.Dir)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Dir)
		}
		return nil
	}

	if err := os.MkdirAll(s.Dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Path returns the file backing key.
func (s *Storage) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key+s.config.Ext), nil
}

// Get reads the file backing key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.config.Logger.Debug("blob read", "key", key, "path", path, "bytes", len(data))
	return data, nil
}

// Set atomically replaces the file backing key.
func (s *Storage) Set(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.Path(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, blob, filePerm); err != nil {
		return err
	}

	now := time.Now()
	s.mu.Lock()
	s.lastWrite = &now
	s.mu.Unlock()

	s.config.Logger.Debug("blob written", "key", key, "path", path, "bytes", len(blob))
	return nil
}

// keyFor maps a file name inside Dir back to its key.
func (s *Storage) keyFor(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, s.config.Ext) {
		return "", false
	}
	key := strings.TrimSuffix(base, s.config.Ext)
	if key == "" || strings.HasPrefix(key, ".") {
		return "", false
	}
	return key, true
}
