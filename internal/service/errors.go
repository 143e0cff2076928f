package service

import "errors"

// Sentinel errors for the sale workflow. Handlers map these to HTTP statuses
// with errors.Is; services wrap them with context (SKU, bill id) via %w.
var (
	// ErrSKUNotFound — no product exists with that SKU.
	ErrSKUNotFound = errors.New("sku not found in inventory")
	// ErrUnavailable — product exists but has no stock to sell.
	ErrUnavailable = errors.New("product is not available")
	// ErrDuplicateInCart — the SKU already has a line in the current cart.
	// Callers adjust the line quantity instead of re-adding.
	ErrDuplicateInCart = errors.New("sku already in cart")
	// ErrSoldOut — the atomic conditional decrement matched zero rows:
	// another checkout took the stock first.
	ErrSoldOut = errors.New("sold out")
	// ErrEmptyCart — checkout was requested with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBillNumberGeneration — the store could not produce a sequential number.
	ErrBillNumberGeneration = errors.New("bill number generation failed")
	// ErrPartialWrite — a bill exists whose item-level stock debits never
	// landed. Surfaced by the reconcile cron, never by checkout itself
	// (checkout is transactional).
	ErrPartialWrite = errors.New("bill persisted with incomplete stock debits")
	// ErrStoreUnavailable — generic transport/store error, retryable.
	ErrStoreUnavailable = errors.New("store unavailable")
)
