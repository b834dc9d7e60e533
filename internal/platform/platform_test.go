package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/localnotes/pkg/adapters/fs"
	"github.com/aretw0/localnotes/pkg/adapters/memory"
	"github.com/aretw0/localnotes/pkg/core"
)

func TestInit_Adapters(t *testing.T) {
	ctx := context.Background()

	t.Run("fs creates the data dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		storage, err := Init(ctx, dir)
		require.NoError(t, err)

		fsStorage, ok := storage.(*fs.Storage)
		require.True(t, ok)
		assert.Equal(t, dir, fsStorage.Dir)
		assert.DirExists(t, dir)
	})

	t.Run("fs must exist", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		_, err := Init(ctx, dir, WithMustExist(true))
		assert.Error(t, err)
	})

	t.Run("memory", func(t *testing.T) {
		storage, err := Init(ctx, "", WithAdapter(AdapterMemory))
		require.NoError(t, err)
		assert.IsType(t, &memory.Storage{}, storage)
	})

	t.Run("injected storage", func(t *testing.T) {
		injected := memory.NewStorage()
		storage, err := Init(ctx, "ignored", WithStorage(injected), WithAdapter("nope"))
		require.NoError(t, err)
		assert.Same(t, injected, storage)
	})

	t.Run("unknown adapter", func(t *testing.T) {
		_, err := Init(ctx, "", WithAdapter("postgres"))
		assert.ErrorContains(t, err, "unknown adapter")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Init(ctx, t.TempDir(), WithFormat("toml"))
		assert.ErrorIs(t, err, core.ErrUnsupported)
	})
}

func TestInit_DevSafetyRedirectsOutsideTemp(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	target := filepath.Join(home, "localnotes-should-not-exist")
	sandbox := filepath.Join(os.TempDir(), devDirName, "localnotes-should-not-exist")
	t.Cleanup(func() { os.RemoveAll(sandbox) })

	storage, err := Init(context.Background(), target)
	require.NoError(t, err)

	fsStorage := storage.(*fs.Storage)
	assert.Equal(t, sandbox, fsStorage.Dir)
	assert.NoDirExists(t, target)
}

func TestNew_WiresStoreOptions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store, err := New(ctx, dir,
		WithFormat("yaml"),
		WithKey("journal"),
		WithClock(core.ClockFunc(func() time.Time { return at })),
		WithIDGenerator(func() string { return "fixed" }),
	)
	require.NoError(t, err)

	id := store.Create(ctx)
	assert.Equal(t, "fixed", id)

	note, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, at.UnixMilli(), note.UpdatedAt)

	assert.FileExists(t, filepath.Join(dir, "journal.yaml"))

	reopened, err := New(ctx, dir, WithFormat("yaml"), WithKey("journal"))
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())
}

func TestNew_ErrorHandlerReceivesCorruptData(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	require.NoError(t, storage.Set(ctx, core.DefaultKey, []byte("{not json")))

	var reported []error
	store, err := New(ctx, "", WithStorage(storage), WithErrorHandler(func(err error) {
		reported = append(reported, err)
	}))
	require.NoError(t, err)

	assert.Equal(t, 0, store.Len())
	require.Len(t, reported, 1)
	assert.True(t, errors.Is(reported[0], core.ErrCorrupt))
}
