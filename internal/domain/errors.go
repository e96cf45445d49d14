package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuantity is returned when an add would not increase a line's quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrPersist wraps cart state write failures. The mutation that caused the
	// write still applies to the in-memory cart.
	ErrPersist = errors.New("cart state not persisted")
	// ErrEmptyCart is returned when checking out a cart without items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInProgress is returned when a cart is already being paid for.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	// ErrPaymentFailed wraps payment processor errors during checkout.
	ErrPaymentFailed = errors.New("payment failed")
)
