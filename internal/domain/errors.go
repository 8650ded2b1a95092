package domain

import "errors"

var (
	// ErrInvalidCredential is a normal negative login result, not a failure.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrNoActiveOrder means a table currently has no open or sent order.
	ErrNoActiveOrder = errors.New("no active order for table")

	ErrTableNotFound    = errors.New("table not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidCategory  = errors.New("invalid menu category")

	// ErrIntegrity surfaces a uniqueness or invariant breach reported by the
	// backing store, e.g. a duplicate (order, menu item) line.
	ErrIntegrity = errors.New("integrity violation")
)
