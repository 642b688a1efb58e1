package apierr

import (
	"strconv"
	"time"
)

const unknownTitle = "An unknown error occurred"

// Report is the user-facing description of a failed API call, suitable
// for an error dialog: what happened, what to do, and the raw details.
type Report struct {
	ErrorType     Category   `json:"error_type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Solutions     []Solution `json:"solutions"`
	OriginalError string     `json:"original_error"`
	StatusCode    int        `json:"status_code,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}

// NewReport classifies raw and assembles a Report stamped with now (UTC).
// statusCode is the HTTP status of the failed call, or 0 if unknown; when
// set, it takes part in classification so a bare "402" body still maps to
// InsufficientCredits.
func NewReport(raw string, statusCode int, now time.Time) Report {
	c := Classify(raw)
	if statusCode > 0 && c.Category == Unknown {
		if withStatus := Classify(statusText(statusCode) + " " + raw); withStatus.Category != Unknown {
			c = withStatus
		}
	}

	r := Report{
		ErrorType:     c.Category,
		Title:         c.Message,
		Message:       c.Suggestion,
		Solutions:     Solutions(c.Category),
		OriginalError: raw,
		StatusCode:    statusCode,
		Timestamp:     now.UTC(),
	}
	if c.Category == Unknown {
		r.Title = unknownTitle
		r.Message = c.Message
	}
	return r
}

// HasSolutions reports whether the report offers any remediation.
func (r Report) HasSolutions() bool {
	return len(r.Solutions) > 0
}

// Summary joins title and message the way chat transcripts show it.
func (r Report) Summary() string {
	if r.Message == "" {
		return r.Title
	}
	return r.Title + "\n\n" + r.Message
}

// statusText renders an HTTP status as a classifiable token.
func statusText(code int) string {
	return "HTTP " + strconv.Itoa(code)
}
