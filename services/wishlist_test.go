package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	st := newMemStore()
	wishlist := NewWishlistService(st, nil)
	plant := st.seedPlant("Monstera", 400, 0, 5)

	liked, err := wishlist.Toggle(1, plant.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	isLiked, err := wishlist.IsLiked(1, plant.ID)
	require.NoError(t, err)
	assert.True(t, isLiked)

	liked, err = wishlist.Toggle(1, plant.ID)
	require.NoError(t, err)
	assert.False(t, liked, "second toggle returns to the original state")

	isLiked, err = wishlist.IsLiked(1, plant.ID)
	require.NoError(t, err)
	assert.False(t, isLiked)

	count, err := wishlist.Count(1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleLikeSnapshotsProduct(t *testing.T) {
	st := newMemStore()
	wishlist := NewWishlistService(st, nil)
	plant := st.seedPlant("Fern", 150, 0, 5)
	plant.Img = "/img/fern.jpg"
	require.NoError(t, st.SavePlant(plant))

	liked, err := wishlist.Toggle(1, plant.ID)
	require.NoError(t, err)
	require.True(t, liked)

	likes, err := wishlist.List(1)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, "Fern", likes[0].Name)
	assert.Equal(t, 150.0, likes[0].Price)
	assert.Equal(t, "/img/fern.jpg", likes[0].Img)
}

func TestToggleLikeMissingPlant(t *testing.T) {
	st := newMemStore()
	wishlist := NewWishlistService(st, nil)

	_, err := wishlist.Toggle(1, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeCountPerUser(t *testing.T) {
	st := newMemStore()
	wishlist := NewWishlistService(st, nil)
	plantA := st.seedPlant("Monstera", 400, 0, 5)
	plantB := st.seedPlant("Cactus", 120, 0, 5)

	_, err := wishlist.Toggle(1, plantA.ID)
	require.NoError(t, err)
	_, err = wishlist.Toggle(1, plantB.ID)
	require.NoError(t, err)
	_, err = wishlist.Toggle(2, plantA.ID)
	require.NoError(t, err)

	count, err := wishlist.Count(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = wishlist.Count(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
