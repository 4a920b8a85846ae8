package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/limbo/stepdiary/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, store.NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepdiary.db")
	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	assert.Equal(t, path, s.Path())
	runStoreTests(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepdiary.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "directory", []byte(`{"schema":1}`)))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	value, ok, err := s.Get(ctx, "directory")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"schema":1}`), value)
}

func runStoreTests(t *testing.T, s store.Store) {
	ctx := context.Background()
	t.Run("missing key", func(t *testing.T) {
		value, ok, err := s.Get(ctx, "nope")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})
	t.Run("put and get", func(t *testing.T) {
		err := s.Put(ctx, "steplog/alice", []byte(`[]`))
		assert.NoError(t, err)
		value, ok, err := s.Get(ctx, "steplog/alice")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[]`), value)
	})
	t.Run("put replaces whole value", func(t *testing.T) {
		err := s.Put(ctx, "steplog/alice", []byte(`[{"id":"1"}]`))
		assert.NoError(t, err)
		value, ok, err := s.Get(ctx, "steplog/alice")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[{"id":"1"}]`), value)
	})
	t.Run("delete", func(t *testing.T) {
		err := s.Delete(ctx, "steplog/alice")
		assert.NoError(t, err)
		_, ok, err := s.Get(ctx, "steplog/alice")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("delete is idempotent", func(t *testing.T) {
		err := s.Delete(ctx, "steplog/alice")
		assert.NoError(t, err)
	})
}
