package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates new file with perm", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "notes.json")

		require.NoError(t, writeFileAtomic(filename, []byte(`[]`), 0o600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))

		if runtime.GOOS != "windows" {
			info, err := os.Stat(filename)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		}
	})

	t.Run("overwrites and keeps existing mode", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "notes.json")
		require.NoError(t, os.WriteFile(filename, []byte("old"), 0o640))
		require.NoError(t, os.Chmod(filename, 0o640))

		require.NoError(t, writeFileAtomic(filename, []byte("new"), 0o600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		if runtime.GOOS != "windows" {
			info, err := os.Stat(filename)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "notes.json")

		for _, content := range []string{"a", "bb", "ccc"} {
			require.NoError(t, writeFileAtomic(filename, []byte(content), 0o644))
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "notes.json", entries[0].Name())
	})

	t.Run("fails if directory missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing", "notes.json")

		assert.Error(t, writeFileAtomic(filename, []byte("x"), 0o644))
	})
}
