package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/localnotes/pkg/adapters/fs"
	"github.com/aretw0/localnotes/pkg/core"
)

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed")
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
		return core.Event{}
	}
}

func TestStorage_WatchReportsExternalWrites(t *testing.T) {
	s := setupStorage(t, fs.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "notes")
	require.NoError(t, err)

	path := filepath.Join(s.Dir, "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	e := nextEvent(t, events)
	assert.Equal(t, "notes", e.Key)
	assert.Equal(t, core.EventCreate, e.Type)

	require.NoError(t, s.Set(ctx, "notes", []byte(`[{"id":"a"}]`)))
	e = nextEvent(t, events)
	assert.Equal(t, "notes", e.Key)

	require.NoError(t, os.Remove(path))
	for e.Type != core.EventDelete {
		e = nextEvent(t, events)
	}
	assert.Equal(t, "notes", e.Key)
}

func TestStorage_WatchFiltersByPattern(t *testing.T) {
	s := setupStorage(t, fs.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "work-*")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "home.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "work.txt"), []byte(`x`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, "work-notes.json"), []byte(`[]`), 0o644))

	e := nextEvent(t, events)
	assert.Equal(t, "work-notes", e.Key)
}

func TestStorage_WatchClosesOnCancel(t *testing.T) {
	s := setupStorage(t, fs.Config{})
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "")
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return s.State().(fs.StorageState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed after cancel")
	}
	assert.Eventually(t, func() bool {
		return !s.State().(fs.StorageState).WatcherActive
	}, time.Second, 10*time.Millisecond)
}

func TestStorage_WatchRejectsBadPattern(t *testing.T) {
	s := setupStorage(t, fs.Config{})

	_, err := s.Watch(context.Background(), "[unclosed")
	assert.Error(t, err)
}

func TestStore_ReloadsOnWatchEvent(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader, err := core.Open(ctx, setupStorage(t, fs.Config{Dir: dir}))
	require.NoError(t, err)
	events, err := reader.Watch(ctx)
	require.NoError(t, err)

	writer, err := core.Open(ctx, setupStorage(t, fs.Config{Dir: dir}))
	require.NoError(t, err)
	id := writer.Create(ctx)

	nextEvent(t, events)
	require.NoError(t, reader.Reload(ctx))

	_, ok := reader.Get(id)
	assert.True(t, ok)
}
