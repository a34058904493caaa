package domain

import "errors"

// Closed set of error kinds raised by the user and property stores.
// The HTTP layer maps each sentinel to exactly one status code.
var (
	// ErrValidation marks a malformed, missing, or out-of-range field.
	// Always wrapped with a message naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both "no such user" and
	// "wrong password" so login failures cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("either the email or password is invalid")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user with provided email already exists")
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyExists   = errors.New("property with provided name already exists")

	// ErrNotOwner is returned when a broker mutates a property they do
	// not own, or when the acting account is not an active broker.
	ErrNotOwner = errors.New("property does not belong to this broker")

	// ErrNoChange reports a write that matched a document but modified
	// nothing. Existence is always checked first, so this is a true no-op,
	// not a disguised not-found.
	ErrNoChange = errors.New("no fields were modified")

	// ErrMembershipSync reports a failure on the second leg of a
	// property/owner dual write. The property change itself is durable;
	// the broker's owned-property list is now out of sync.
	ErrMembershipSync = errors.New("owned-property list out of sync with property change")
)
