// Package usecase implements the business logic for the watchlist feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned by the user directory when no user matches the email.
	// Read operations treat it as an empty result, never as a failure.
	ErrUserNotFound = errors.New("user not found")

	// ErrEntryNotFound is returned when no entry exists for a (user, symbol) pair.
	ErrEntryNotFound = errors.New("watchlist entry not found")

	// ErrEntryAlreadyExists is returned when creating an entry would violate the
	// (user, symbol) uniqueness constraint.
	ErrEntryAlreadyExists = errors.New("watchlist entry already exists")

	// ErrQuoteUnavailable is returned by quote sources that have no price for a symbol.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Messages reported through ToggleResult.Error.
const (
	MsgInvalidData  = "Invalid data"
	MsgUserNotFound = "User not found"
	MsgUpdateFailed = "Failed to update watchlist"
)
