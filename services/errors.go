package services

import "errors"

var (
	// ErrOutOfStock signals that a reservation asked for more units than the
	// plant has available. The operation has no partial effect.
	ErrOutOfStock = errors.New("out of stock")

	// ErrStockLimitReached is the cart-side variant: the cart already holds
	// as many units as the plant has available.
	ErrStockLimitReached = errors.New("stock limit reached")

	// ErrNotFound covers stale id references (deleted plant, order, line).
	ErrNotFound = errors.New("record not found")

	// ErrEmptyCart rejects a checkout with nothing to commit.
	ErrEmptyCart = errors.New("cart is empty")
)
