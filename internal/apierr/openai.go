package apierr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ClassifyError classifies a Go error returned by an API client.
//
// Errors from go-openai carry the HTTP status separately from the message;
// both are folded into the text so status tokens ("401", "429") match.
// A context deadline is reported as a network timeout rather than letting
// "deadline exceeded" fall through to QuotaExceeded.
func ClassifyError(err error) Classification {
	if err == nil {
		return Classify("")
	}
	return Classify(errorText(err))
}

// Wrap annotates err with the sentinel of its category so callers can
// branch with errors.Is. Unknown errors and nil are returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	sentinel := ClassifyError(err).Category.Err()
	if sentinel == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", err, sentinel)
}

// IsRetryable reports whether err belongs to a transient category.
// Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return ClassifyError(err).Category.Retryable()
}

// StatusCode returns the HTTP status carried by a go-openai error, or 0.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// errorText renders err as classifiable text.
func errorText(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timeout: " + err.Error()
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode > 0 {
			return fmt.Sprintf("HTTP %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return apiErr.Message
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := string(reqErr.Body)
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return fmt.Sprintf("HTTP %d: %s", reqErr.HTTPStatusCode, msg)
	}

	return err.Error()
}

// apiErrorIndicators are lowercase substrings that mark an error as coming
// from an LLM provider rather than from our own code.
var apiErrorIndicators = []string{
	"insufficient credits",
	"invalid api key",
	"rate limit",
	"quota exceeded",
	"model not found",
	"unauthorized",
	"authentication failed",
	"connection error",
	"timeout",
	"openai",
	"openrouter",
	"anthropic",
}

// IsAPIError reports whether err looks like a provider API failure that
// deserves a user-facing report. Typed go-openai errors always qualify.
func IsAPIError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) || errors.As(err, &reqErr) {
		return true
	}

	return containsAny(strings.ToLower(err.Error()), apiErrorIndicators)
}
