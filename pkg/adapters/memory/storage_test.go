package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/localnotes/pkg/adapters/memory"
	"github.com/aretw0/localnotes/pkg/core"
)

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()

	_, err := s.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrNotFound)

	blob := []byte(`[]`)
	require.NoError(t, s.Set(ctx, "notes", blob))
	blob[0] = 'x'

	got, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got, "Set must copy its input")

	got[0] = 'y'
	again, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), again, "Get must return a copy")

	assert.Equal(t, 1, s.Writes())
	assert.Equal(t, memory.StorageState{Keys: 1, Writes: 1}, s.State())
}

func TestStorage_InvalidKey(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()

	assert.ErrorIs(t, s.Set(ctx, "", nil), core.ErrInvalidKey)
	_, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, core.ErrInvalidKey)
	assert.Zero(t, s.Writes())
}
