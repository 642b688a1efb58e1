package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrInvalidStatusCode indicates --status-code is outside 100-599.
	ErrInvalidStatusCode = errors.New("invalid HTTP status code")

	// ErrInvalidInputType indicates --input-type was given for a status
	// that is not awaiting input.
	ErrInvalidInputType = errors.New("input type only applies to awaiting_input")

	// ErrProbeFailed indicates at least one provider probe failed.
	ErrProbeFailed = errors.New("provider check failed")

	// ErrInputTooLarge indicates stdin exceeded the accepted size.
	ErrInputTooLarge = errors.New("input too large")
)
