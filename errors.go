package mshoot

import "errors"

// Formulation errors. All are reported synchronously by the call that
// detects them and are matched with errors.Is; callers fix the schema or
// configuration and rebuild, nothing is recoverable in place.
var (
	// ErrConfiguration indicates bad horizon specs, a bad step-size spec,
	// a list/non-list table mismatch, or a missing collaborator.
	ErrConfiguration = errors.New("mshoot: invalid configuration")

	// ErrUnknownVariable indicates a name absent from the flattened table.
	ErrUnknownVariable = errors.New("mshoot: unknown variable name")

	// ErrInsufficientHorizon indicates a multiplicity too small for the
	// requested transcription length.
	ErrInsufficientHorizon = errors.New("mshoot: insufficient horizon")

	// ErrShape indicates a value whose dimensions do not fit its
	// declared expansion strategy.
	ErrShape = errors.New("mshoot: invalid value shape")
)
