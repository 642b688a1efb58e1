package apierr_test

// Coverage Notes:
// - Solutions: one primary per list, primary first, actions with URLs carry them.
// - NewReport: category mapping, unknown title handling, status code
//   participation, timestamp normalization to UTC.

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-runstatus/internal/apierr"
)

// ---------------------------------------------------------------------------
// TestSolutions - remediation catalog shape
// ---------------------------------------------------------------------------

func TestSolutions(t *testing.T) {
	t.Parallel()

	for _, c := range apierr.Categories {
		c := c
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			sols := apierr.Solutions(c)
			if len(sols) == 0 {
				t.Fatal("no solutions")
			}
			if !sols[0].Primary {
				t.Errorf("first solution %q is not primary", sols[0].Title)
			}
			primaries := 0
			for _, s := range sols {
				if s.Primary {
					primaries++
				}
				if s.Action == apierr.ActionOpenURL && s.URL == "" {
					t.Errorf("solution %q opens a URL but has none", s.Title)
				}
				if s.Title == "" || s.Description == "" {
					t.Errorf("solution %+v missing title or description", s)
				}
			}
			if primaries != 1 {
				t.Errorf("primary count = %d, want 1", primaries)
			}
		})
	}
}

func TestSolutions_InsufficientCredits(t *testing.T) {
	t.Parallel()

	sols := apierr.Solutions(apierr.InsufficientCredits)
	wantActions := []apierr.Action{apierr.ActionOpenURL, apierr.ActionOpenSettings, apierr.ActionSuggestModels}
	var gotActions []apierr.Action
	for _, s := range sols {
		gotActions = append(gotActions, s.Action)
	}
	if diff := cmp.Diff(wantActions, gotActions); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
	if sols[0].URL != apierr.OpenRouterCreditsURL {
		t.Errorf("primary URL = %q, want %q", sols[0].URL, apierr.OpenRouterCreditsURL)
	}
	if len(sols[2].Models) == 0 {
		t.Error("suggest_models solution has no models")
	}
}

func TestSolutions_ReturnsFreshSlices(t *testing.T) {
	t.Parallel()

	first := apierr.Solutions(apierr.InsufficientCredits)
	first[0].Title = "mutated"
	first[2].Models[0] = "mutated"

	second := apierr.Solutions(apierr.InsufficientCredits)
	if second[0].Title == "mutated" || second[2].Models[0] == "mutated" {
		t.Error("Solutions shares state between calls")
	}
	if apierr.FreeModels[0] == "mutated" {
		t.Error("Solutions exposed FreeModels backing array")
	}
}

// ---------------------------------------------------------------------------
// TestNewReport - user-facing error payload
// ---------------------------------------------------------------------------

func TestNewReport(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("classified error", func(t *testing.T) {
		t.Parallel()

		raw := "Error code: 402 - Insufficient credits"
		r := apierr.NewReport(raw, 0, now)

		if r.ErrorType != apierr.InsufficientCredits {
			t.Errorf("ErrorType = %q, want %q", r.ErrorType, apierr.InsufficientCredits)
		}
		c := apierr.Classify(raw)
		if r.Title != c.Message || r.Message != c.Suggestion {
			t.Errorf("Title/Message = %q/%q, want %q/%q", r.Title, r.Message, c.Message, c.Suggestion)
		}
		if r.OriginalError != raw {
			t.Errorf("OriginalError = %q, want %q", r.OriginalError, raw)
		}
		if !r.HasSolutions() || len(r.Solutions) != 3 {
			t.Errorf("Solutions = %d, want 3", len(r.Solutions))
		}
		if !r.Timestamp.Equal(now) || r.Timestamp.Location() != time.UTC {
			t.Errorf("Timestamp = %v, want %v in UTC", r.Timestamp, now)
		}
	})

	t.Run("status code classifies bare body", func(t *testing.T) {
		t.Parallel()

		r := apierr.NewReport("upstream said no", 402, now)
		if r.ErrorType != apierr.InsufficientCredits {
			t.Errorf("ErrorType = %q, want %q", r.ErrorType, apierr.InsufficientCredits)
		}
		if r.StatusCode != 402 {
			t.Errorf("StatusCode = %d, want 402", r.StatusCode)
		}
		if r.OriginalError != "upstream said no" {
			t.Errorf("OriginalError = %q, must not include status prefix", r.OriginalError)
		}
	})

	t.Run("text marker wins over status code", func(t *testing.T) {
		t.Parallel()

		r := apierr.NewReport("Rate limit exceeded", 402, now)
		if r.ErrorType != apierr.RateLimit {
			t.Errorf("ErrorType = %q, want %q", r.ErrorType, apierr.RateLimit)
		}
	})

	t.Run("status code that classifies nothing keeps raw text", func(t *testing.T) {
		t.Parallel()

		r := apierr.NewReport("teapot", 418, now)
		if r.ErrorType != apierr.Unknown {
			t.Fatalf("ErrorType = %q, want unknown", r.ErrorType)
		}
		if r.Message != "teapot" {
			t.Errorf("Message = %q, want raw text without status prefix", r.Message)
		}
	})

	t.Run("unknown error", func(t *testing.T) {
		t.Parallel()

		raw := strings.Repeat("z", 150)
		r := apierr.NewReport(raw, 500, now)
		if r.ErrorType != apierr.Unknown {
			t.Fatalf("ErrorType = %q, want unknown", r.ErrorType)
		}
		if r.Title != "An unknown error occurred" {
			t.Errorf("Title = %q", r.Title)
		}
		if r.Message != strings.Repeat("z", 100)+"..." {
			t.Errorf("Message = %q, want truncated original", r.Message)
		}
		if r.Solutions[0].Action != apierr.ActionRetry {
			t.Errorf("primary action = %q, want retry", r.Solutions[0].Action)
		}
	})
}

func TestReportSummary(t *testing.T) {
	t.Parallel()

	r := apierr.Report{Title: "Invalid API key", Message: "Check and update your API key"}
	if got := r.Summary(); got != "Invalid API key\n\nCheck and update your API key" {
		t.Errorf("Summary() = %q", got)
	}
	if got := (apierr.Report{Title: "only"}).Summary(); got != "only" {
		t.Errorf("Summary() without message = %q", got)
	}
}
