// Package storetest checks a store.Store implementation against the
// behavior the dev server relies on.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/toyboard/internal/model"
	"github.com/idilsaglam/toyboard/internal/store"
)

// Run exercises a fresh, empty store returned by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	ctx := context.Background()

	t.Run("EmptyList", func(t *testing.T) {
		s := open(t)
		toys, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, toys)
		assert.Empty(t, toys)
	})

	t.Run("CreateAssignsIDsInOrder", func(t *testing.T) {
		s := open(t)
		bear, err := s.Create(ctx, model.NewToy{Name: "Bear", Image: "b.png"})
		require.NoError(t, err)
		cat, err := s.Create(ctx, model.NewToy{Name: "Cat", Image: "c.png"})
		require.NoError(t, err)

		assert.NotEqual(t, bear.ID, cat.ID)
		assert.True(t, bear.ID.Numeric())
		assert.Equal(t, 0, bear.Likes)

		toys, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Toy{bear, cat}, toys)
	})

	t.Run("GetAndNotFound", func(t *testing.T) {
		s := open(t)
		bear, err := s.Create(ctx, model.NewToy{Name: "Bear", Image: "b.png"})
		require.NoError(t, err)

		got, err := s.Get(ctx, bear.ID)
		require.NoError(t, err)
		assert.Equal(t, bear, got)

		_, err = s.Get(ctx, "999")
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Get(ctx, "not-a-toy")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("UpdateLikesOnly", func(t *testing.T) {
		s := open(t)
		bear, err := s.Create(ctx, model.NewToy{Name: "Bear", Image: "b.png", Likes: 3})
		require.NoError(t, err)

		got, err := s.Update(ctx, bear.ID, model.LikesPatch(4))
		require.NoError(t, err)
		assert.Equal(t, model.Toy{ID: bear.ID, Name: "Bear", Image: "b.png", Likes: 4}, got)

		stored, err := s.Get(ctx, bear.ID)
		require.NoError(t, err)
		assert.Equal(t, got, stored)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		s := open(t)
		_, err := s.Update(ctx, "42", model.LikesPatch(1))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
