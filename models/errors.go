package models

import "errors"

// Domain conditions handlers translate into HTTP status codes. Matched with
// errors.Is throughout.
var (
	// ErrNotFound covers both missing records and records outside the
	// viewer's scope.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is an authorization denial: the caller is not the owner
	// of the target record and not an admin.
	ErrForbidden = errors.New("not allowed to perform this action")

	// ErrInvalidState rejects a transition from the wrong status, including
	// a purchase that lost the race for an on-sale product.
	ErrInvalidState = errors.New("invalid status for this transition")

	// ErrSelfTradeForbidden rejects a seller purchasing their own product.
	ErrSelfTradeForbidden = errors.New("sellers cannot purchase their own product")

	// ErrAlreadyCompleted rejects a second completion of the same transaction.
	ErrAlreadyCompleted = errors.New("transaction is already completed")
)
