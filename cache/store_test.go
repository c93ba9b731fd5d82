package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/trailcomma/cache"
)

func TestKey(t *testing.T) {
	source := []byte("f(\n    a,\n)\n")
	add, err := cache.Key(source, "add", "")
	require.NoError(t, err)
	again, err := cache.Key(source, "add", "")
	require.NoError(t, err)
	assert.Equal(t, add, again)

	remove, err := cache.Key(source, "remove", "")
	require.NoError(t, err)
	assert.NotEqual(t, add, remove)

	shifted, err := cache.Key(source, "ad", "d")
	require.NoError(t, err)
	assert.NotEqual(t, add, shifted)
}

func TestStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := cache.Open(dir)
	require.NoError(t, err)
	assert.Zero(t, store.Len())
	assert.False(t, store.Has(1))

	store.Add(1)
	store.Add(42)
	store.Add(42)
	assert.True(t, store.Has(42))
	require.NoError(t, store.Flush())

	reopened, err := cache.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Len())
	assert.True(t, reopened.Has(1))
	assert.True(t, reopened.Has(42))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are removed")
}

func TestStore_Corrupted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.mp"), []byte("not msgpack"), 0o644))
	store, err := cache.Open(dir)
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

func TestStore_Nil(t *testing.T) {
	var store *cache.Store
	store.Add(1)
	assert.False(t, store.Has(1))
	assert.NoError(t, store.Flush())
}
