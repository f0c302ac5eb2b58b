package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("get after set", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", []byte("v")))

		value, found, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("v"), value)
	})

	t.Run("missing key", func(t *testing.T) {
		m := NewMemory()
		value, found, err := m.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", []byte("old")))
		require.NoError(t, m.Set(ctx, "k", []byte("new")))

		value, _, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), value)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		m := NewMemory()
		require.NoError(t, m.Set(ctx, "k", []byte("v")))
		require.NoError(t, m.Delete(ctx, "k"))

		_, found, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("deleting a missing key is fine", func(t *testing.T) {
		m := NewMemory()
		assert.NoError(t, m.Delete(ctx, "absent"))
	})

	t.Run("values are copied both ways", func(t *testing.T) {
		m := NewMemory()
		original := []byte("immutable")
		require.NoError(t, m.Set(ctx, "k", original))
		original[0] = 'X'

		value, _, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("immutable"), value)

		value[0] = 'Y'
		again, _, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("immutable"), again)
	})

	t.Run("close is a no-op", func(t *testing.T) {
		m := NewMemory()
		assert.NoError(t, m.Close())
	})
}
