// Package storetest checks that a kvstore backend honours the Store contract.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// Run exercises s. The store must start empty.
func Run(t *testing.T, s kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "round.absent")
		assert.True(t, errors.Is(err, kvstore.ErrNotFound), "got %v", err)
	})

	t.Run("put get overwrite", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "round.r1", []byte(`{"v":1}`)))
		require.NoError(t, s.Put(ctx, "round.r1", []byte(`{"v":2}`)))
		got, err := s.Get(ctx, "round.r1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("keys by prefix sorted", func(t *testing.T) {
		for _, k := range []string{"archive.b", "archive.a", "course.x", "archive.c"} {
			require.NoError(t, s.Put(ctx, k, []byte("{}")))
		}
		keys, err := s.Keys(ctx, "archive.")
		require.NoError(t, err)
		assert.Equal(t, []string{"archive.a", "archive.b", "archive.c"}, keys)

		keys, err = s.Keys(ctx, "nothing.")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "archive.b"))
		require.NoError(t, s.Delete(ctx, "archive.b"))
		_, err := s.Get(ctx, "archive.b")
		assert.ErrorIs(t, err, kvstore.ErrNotFound)

		keys, err := s.Keys(ctx, "archive.")
		require.NoError(t, err)
		assert.Equal(t, []string{"archive.a", "archive.c"}, keys)
	})

	t.Run("invalid key", func(t *testing.T) {
		assert.ErrorIs(t, s.Put(ctx, "has space", []byte("{}")), kvstore.ErrInvalidKey)
		assert.ErrorIs(t, s.Put(ctx, "", []byte("{}")), kvstore.ErrInvalidKey)
	})

	t.Run("json helpers", func(t *testing.T) {
		type doc struct{ Name string }
		require.NoError(t, kvstore.PutJSON(ctx, s, "course.c1", doc{Name: "Links"}))
		got, err := kvstore.GetJSON[doc](ctx, s, "course.c1")
		require.NoError(t, err)
		assert.Equal(t, "Links", got.Name)
	})
}
