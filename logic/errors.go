package logic

import "errors"

// Ledger error taxonomy. Every lifecycle failure maps onto one of
// these; controllers translate them to HTTP statuses with errors.Is.
var (
	// ErrNotFound means a referenced request or user row was absent
	// when the transaction executed.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyResolved means the request had already left pending,
	// usually a race with another admin action or a stale panel.
	ErrAlreadyResolved = errors.New("request already resolved")

	// ErrInsufficientFunds means a guarded debit would have driven a
	// balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrForbidden means the acting user does not hold the admin role.
	ErrForbidden = errors.New("forbidden")
)
