package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	ctx := context.Background()

	first, err := NewFileBackend(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "cart", `[{"quantity":2}]`))
	require.NoError(t, first.Set(ctx, "other", "x"))
	require.NoError(t, first.Delete(ctx, "other"))

	second, err := NewFileBackend(path)
	require.NoError(t, err)

	value, ok, err := second.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"quantity":2}]`, value)

	_, ok, err = second.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileBackend_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	backend, err := NewFileBackend(path)
	require.NoError(t, err)

	_, ok, err := backend.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileBackend_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	backend, err := NewFileBackend(path)
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, "a", "1"))
	require.NoError(t, backend.Clear(ctx))

	reopened, err := NewFileBackend(path)
	require.NoError(t, err)
	_, ok, _ := reopened.Get(ctx, "a")
	assert.False(t, ok)
}

func TestNewFileBackend_EmptyPath(t *testing.T) {
	_, err := NewFileBackend("")
	assert.Error(t, err)
}
