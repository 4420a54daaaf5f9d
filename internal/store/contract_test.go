package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fullStore interface {
	Store
	Deleter
	Dumper
}

// runContract проверяет общее поведение всех реализаций Store.
func runContract(t *testing.T, s fullStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing record", func(t *testing.T) {
		ok, err := s.Exists(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.GetField(ctx, "nope", "f")
		require.NoError(t, err)
		assert.False(t, ok)

		fields, err := s.Fields(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, s.SetField(ctx, "r1", "url", "https://x"))
		require.NoError(t, s.SetField(ctx, "r1", "Author Name", "ann"))

		ok, err := s.Exists(ctx, "r1")
		require.NoError(t, err)
		assert.True(t, ok)

		v, ok, err := s.GetField(ctx, "r1", "Author Name")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ann", v)

		_, ok, err = s.GetField(ctx, "r1", "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.SetField(ctx, "r2", "n", "1"))
		require.NoError(t, s.SetField(ctx, "r2", "n", "2"))
		v, _, err := s.GetField(ctx, "r2", "n")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, s.SetField(ctx, "r3", "issues", ""))
		v, ok, err := s.GetField(ctx, "r3", "issues")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", v)

		exists, err := s.Exists(ctx, "r3")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("dump and delete", func(t *testing.T) {
		require.NoError(t, s.SetField(ctx, "r4", "a", "1"))
		require.NoError(t, s.SetField(ctx, "r4", "b", "2"))

		fields, err := s.Fields(ctx, "r4")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, fields)

		require.NoError(t, s.Delete(ctx, "r4"))
		ok, err := s.Exists(ctx, "r4")
		require.NoError(t, err)
		assert.False(t, ok)

		// удаление отсутствующей записи — не ошибка
		require.NoError(t, s.Delete(ctx, "r4"))
	})
}
