package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartSnapshotsDiscountedPrice(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Monstera", 399, 10, 5)

	line, err := cart.AddToCart(1, plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 359.0, line.Price, "10% off 399, rounded")
	assert.Equal(t, 399.0, line.OriginalPrice)
	assert.Equal(t, 10, line.Discount)
	assert.Equal(t, 1, line.Qty)
}

func TestAddToCartWithoutDiscountKeepsBasePrice(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Fern", 150, 0, 5)

	line, err := cart.AddToCart(1, plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, line.Price)
	assert.Equal(t, 150.0, line.OriginalPrice)
}

func TestAddToCartOutOfStock(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Cactus", 120, 0, 0)

	_, err := cart.AddToCart(1, plant.ID)
	require.ErrorIs(t, err, ErrOutOfStock)

	lines, err := st.CartLines(1)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Palm", 250, 0, 3)

	first, err := cart.AddToCart(1, plant.ID)
	require.NoError(t, err)
	second, err := cart.AddToCart(1, plant.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Qty)

	lines, err := st.CartLines(1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestAddToCartStockLimit(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Bonsai", 900, 0, 2)

	_, err := cart.AddToCart(1, plant.ID)
	require.NoError(t, err)
	_, err = cart.AddToCart(1, plant.ID)
	require.NoError(t, err)
	_, err = cart.AddToCart(1, plant.ID)
	require.ErrorIs(t, err, ErrStockLimitReached)

	line, err := st.CartLine(1, plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Qty)
}

func TestIncreaseQtyBoundedByStock(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Ivy", 80, 0, 2)
	line := st.seedCartLine(1, plant, 1)

	require.NoError(t, cart.IncreaseQty(1, line.ID))
	require.ErrorIs(t, cart.IncreaseQty(1, line.ID), ErrStockLimitReached)

	got, err := st.CartLineByID(line.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Qty)
}

func TestDecreaseQtyDeletesLineAtOne(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Aloe", 100, 0, 5)
	line := st.seedCartLine(1, plant, 2)

	require.NoError(t, cart.DecreaseQty(1, line.ID))
	got, err := st.CartLineByID(line.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Qty)

	require.NoError(t, cart.DecreaseQty(1, line.ID))
	_, err = st.CartLineByID(line.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartOperationsRequireOwnership(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Rose", 60, 0, 5)
	line := st.seedCartLine(1, plant, 1)

	assert.ErrorIs(t, cart.IncreaseQty(2, line.ID), ErrNotFound)
	assert.ErrorIs(t, cart.DecreaseQty(2, line.ID), ErrNotFound)
}

// Repeated increase/decrease churn must never drive the cart past the
// plant's visible stock, and the plant's counters stay untouched: cart
// quantities reserve nothing before checkout.
func TestRepeatedQtyChurnStaysBounded(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plant := st.seedPlant("Jade", 200, 0, 3)
	line := st.seedCartLine(1, plant, 1)

	for i := 0; i < 10; i++ {
		_ = cart.IncreaseQty(1, line.ID)
	}
	got, err := st.CartLineByID(line.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Qty)

	for i := 0; i < 2; i++ {
		require.NoError(t, cart.DecreaseQty(1, line.ID))
	}
	got, err = st.CartLineByID(line.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Qty)

	gotPlant, err := st.Plant(plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, gotPlant.Quantity)
	assert.Equal(t, 0, gotPlant.SellingQuantity)
}

func TestRemoveByProductAndClear(t *testing.T) {
	st := newMemStore()
	cart := NewCartService(st, nil)
	plantA := st.seedPlant("Monstera", 400, 0, 5)
	plantB := st.seedPlant("Fern", 150, 0, 5)
	st.seedCartLine(1, plantA, 2)
	st.seedCartLine(1, plantB, 1)
	st.seedCartLine(2, plantA, 1)

	require.NoError(t, cart.RemoveByProduct(1, plantA.ID))
	lines, err := st.CartLines(1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	// Removing an absent product is a no-op.
	require.NoError(t, cart.RemoveByProduct(1, plantA.ID))

	require.NoError(t, cart.Clear(1))
	lines, err = st.CartLines(1)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Another user's cart survives.
	other, err := st.CartLines(2)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
