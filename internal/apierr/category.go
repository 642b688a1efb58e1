package apierr

import "fmt"

// Category is the closed set of API error kinds.
// The zero value is not a valid category; Classify never returns it.
type Category string

// Error categories, in classification priority order (Unknown last).
const (
	InsufficientCredits Category = "insufficient_credits"
	InvalidAPIKey       Category = "invalid_api_key"
	RateLimit           Category = "rate_limit"
	NetworkError        Category = "network_error"
	QuotaExceeded       Category = "quota_exceeded"
	Unknown             Category = "unknown"
)

// Categories lists every category in classification priority order.
var Categories = []Category{
	InsufficientCredits,
	InvalidAPIKey,
	RateLimit,
	NetworkError,
	QuotaExceeded,
	Unknown,
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Unknown

// ParseCategory validates a category name such as "rate_limit".
// Returns ErrUnknownCategory if the name is not recognized.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q: %w", s, ErrUnknownCategory)
}

// String returns the wire name of the category.
func (c Category) String() string {
	return string(c)
}

// Err returns the sentinel error for the category, or nil for Unknown.
func (c Category) Err() error {
	switch c {
	case InsufficientCredits:
		return ErrInsufficientCredits
	case InvalidAPIKey:
		return ErrAuthFailed
	case RateLimit:
		return ErrRateLimit
	case NetworkError:
		return ErrNetwork
	case QuotaExceeded:
		return ErrQuotaExceeded
	default:
		return nil
	}
}

// Retryable reports whether failures in this category are transient.
// Billing and credential problems need user action, so they are not.
func (c Category) Retryable() bool {
	return c == RateLimit || c == NetworkError
}
