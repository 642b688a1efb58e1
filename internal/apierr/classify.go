package apierr

import (
	"strings"
	"unicode/utf8"
)

// MaxUnknownMessageLen bounds the display length, in runes, of an
// unclassified error message. Longer messages are cut and suffixed with
// truncationMarker.
const MaxUnknownMessageLen = 100

const (
	truncationMarker = "..."
	genericMessage   = "An error occurred"
)

// Classification is the result of classifying an error message.
// Suggestion is empty when no remedy is known.
type Classification struct {
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// HasSuggestion reports whether a remedy is attached.
func (c Classification) HasSuggestion() bool {
	return c.Suggestion != ""
}

// rule binds a category to its trigger markers and fixed texts.
// Markers are lowercase substrings.
type rule struct {
	category   Category
	markers    []string
	message    string
	suggestion string
}

// rules is evaluated top to bottom; the first rule with a matching marker wins.
// Markers overlap across rules ("rate limit exceeded" also contains
// "exceeded"), so the order is part of the contract.
var rules = []rule{
	{
		category:   InsufficientCredits,
		markers:    []string{"insufficient credits", "payment required", "402"},
		message:    "Insufficient API credits",
		suggestion: "Top up your OpenRouter account or configure your own API key",
	},
	{
		category: InvalidAPIKey,
		markers: []string{
			"invalid api key", "invalid_api_key", "incorrect api key",
			"authentication failed", "unauthorized", "401",
		},
		message:    "Invalid API key",
		suggestion: "Check and update your API key",
	},
	{
		category:   RateLimit,
		markers:    []string{"rate limit", "rate_limit", "too many requests", "429"},
		message:    "Too many requests",
		suggestion: "Try again later or upgrade your API plan",
	},
	{
		category:   NetworkError,
		markers:    []string{"connection", "network", "timeout"},
		message:    "Network connection error",
		suggestion: "Check your network connection or try again later",
	},
	{
		category:   QuotaExceeded,
		markers:    []string{"quota", "exceeded"},
		message:    "API quota exhausted",
		suggestion: "Check your account balance or wait for the quota to reset",
	},
}

// Classify maps a raw error message to a Classification.
//
// Empty or blank input yields Unknown with a generic message. Otherwise the
// lowercased text is matched against each category's markers in priority
// order. When nothing matches, the category is Unknown and the message is
// the original text, truncated to MaxUnknownMessageLen runes, with
// invalid UTF-8 replaced by U+FFFD.
func Classify(raw string) Classification {
	if strings.TrimSpace(raw) == "" {
		return Classification{Category: Unknown, Message: genericMessage}
	}

	lower := strings.ToLower(raw)
	for _, r := range rules {
		if containsAny(lower, r.markers) {
			return Classification{
				Category:   r.category,
				Message:    r.message,
				Suggestion: r.suggestion,
			}
		}
	}

	return Classification{Category: Unknown, Message: truncate(raw, MaxUnknownMessageLen)}
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n runes, appending truncationMarker when cut.
// Invalid UTF-8 sequences become U+FFFD whatever the length.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + truncationMarker
}
