// Package common defines shared sentinel errors used across the storage and
// CLI layers of the code library. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthenticated is returned by snippet store mutations invoked
	// without a signed-in identity. The CLI guards against this, so seeing
	// it usually means a caller bug rather than user input.
	ErrNotAuthenticated = errors.New("not authenticated")
)
