package fs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/localnotes/pkg/core"
)

// DebounceWindow coalesces the burst of events a single atomic write produces.
const DebounceWindow = 50 * time.Millisecond

// Watch emits an event whenever a key matching pattern changes on disk.
// An empty pattern matches every key. The channel is closed once ctx is done.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Dir, err)
	}

	events := make(chan core.Event)
	w := &watchWorker{
		storage: s,
		pattern: pattern,
		watcher: watcher,
		events:  events,
		pending: make(map[string]core.Event),
	}

	s.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.handleError(fmt.Errorf("watcher stopped: %w", err))
	}))

	return events, nil
}

type watchWorker struct {
	storage *Storage
	pattern string
	watcher *fsnotify.Watcher
	events  chan<- core.Event
	pending map[string]core.Event
}

// run is the event loop. It owns the events channel and closes it on exit.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.storage.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.storage.setWatcherActive(false)
	defer w.watcher.Close()

	flush := time.NewTimer(DebounceWindow)
	flush.Stop()
	defer flush.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if w.queue(event) {
				flush.Reset(DebounceWindow)
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
			w.storage.handleError(wErr)

		case <-flush.C:
			if !w.flush(ctx) {
				return nil
			}
		}
	}
}

// queue records event as pending if it concerns a watched key.
func (w *watchWorker) queue(event fsnotify.Event) bool {
	key, ok := w.storage.keyFor(event.Name)
	if !ok {
		return false
	}
	if w.pattern != "" {
		if match, _ := doublestar.Match(w.pattern, key); !match {
			return false
		}
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.storage.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	// A create followed by writes within the window is still a create.
	if prev, seen := w.pending[key]; seen && prev.Type == core.EventCreate && eType == core.EventModify {
		eType = core.EventCreate
	}
	w.pending[key] = core.Event{
		Type:      eType,
		Key:       key,
		Timestamp: time.Now().UnixMilli(),
	}
	return true
}

// flush delivers pending events in key order. It returns false if ctx ended.
func (w *watchWorker) flush(ctx context.Context) bool {
	keys := make([]string, 0, len(w.pending))
	for k := range w.pending {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		select {
		case w.events <- w.pending[k]:
			delete(w.pending, k)
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

func (s *Storage) handleError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
