// Package apierr classifies API failures reported by LLM providers into a
// closed set of categories, each with a fixed user-facing message, a
// suggested remedy, and a list of remediation actions.
//
// Classification works on free text because run errors reach us as strings
// (stream errors, stored run records). Typed provider errors are first
// rendered to text with their HTTP status code (see ClassifyError), so both
// paths share the same marker table.
//
// Every category except Unknown has a sentinel error. Callers that want to
// branch on the category of a Go error can use Wrap and errors.Is:
//
//	if errors.Is(apierr.Wrap(err), apierr.ErrRateLimit) { ... }
package apierr

import "errors"

// Sentinel errors for API interaction failures.
var (
	// ErrInsufficientCredits indicates the account has no credits left (billing issue, not retryable).
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAuthFailed indicates API authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimit indicates the API rate limit was exceeded (temporary, retryable).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrNetwork indicates the provider could not be reached or timed out (retryable).
	ErrNetwork = errors.New("network error")

	// ErrQuotaExceeded indicates the API quota was exceeded (billing issue, not retryable).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrUnknownCategory indicates a category name could not be parsed.
	ErrUnknownCategory = errors.New("unknown error category")
)
