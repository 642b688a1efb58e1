package apierr_test

// Coverage Notes:
// - Tests verify retry count, shouldRetry filtering, the nil shouldRetry default, OnRetry, and cancellation.
// - Exact backoff timing is not tested (implementation detail), only observable behavior.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-runstatus/internal/apierr"
)

// fastRetry keeps tests quick while still exercising backoff.
func fastRetry(maxRetries int) apierr.RetryConfig {
	return apierr.RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

// ---------------------------------------------------------------------------
// TestRetryWithBackoff - Generic retry utility
// ---------------------------------------------------------------------------

func TestRetryWithBackoff(t *testing.T) {
	t.Parallel()

	t.Run("success on first try returns immediately", func(t *testing.T) {
		t.Parallel()

		callCount := 0
		result, err := apierr.RetryWithBackoff(
			context.Background(),
			apierr.RetryConfig{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: time.Minute},
			func() (string, error) {
				callCount++
				return "immediate", nil
			},
			func(error) bool { return true },
		)

		if err != nil {
			t.Errorf("RetryWithBackoff() unexpected error: %v", err)
		}
		if result != "immediate" {
			t.Errorf("got %q, want %q", result, "immediate")
		}
		if callCount != 1 {
			t.Errorf("call count = %d, want 1", callCount)
		}
	})

	t.Run("retries then succeeds", func(t *testing.T) {
		t.Parallel()

		callCount := 0
		result, err := apierr.RetryWithBackoff(
			context.Background(),
			fastRetry(3),
			func() (int, error) {
				callCount++
				if callCount < 3 {
					return 0, errors.New("transient")
				}
				return 42, nil
			},
			func(error) bool { return true },
		)

		if err != nil {
			t.Errorf("RetryWithBackoff() unexpected error: %v", err)
		}
		if result != 42 {
			t.Errorf("got %d, want 42", result)
		}
		if callCount != 3 {
			t.Errorf("call count = %d, want 3", callCount)
		}
	})

	t.Run("max retries exceeded wraps last error", func(t *testing.T) {
		t.Parallel()

		callCount := 0
		testErr := errors.New("always fails")
		_, err := apierr.RetryWithBackoff(
			context.Background(),
			fastRetry(2),
			func() (string, error) {
				callCount++
				return "", testErr
			},
			func(error) bool { return true },
		)

		if !errors.Is(err, testErr) {
			t.Errorf("error should wrap original: got %v", err)
		}
		if callCount != 3 {
			t.Errorf("call count = %d, want 3 (1 initial + 2 retries)", callCount)
		}
	})

	t.Run("negative MaxRetries means single attempt", func(t *testing.T) {
		t.Parallel()

		callCount := 0
		_, err := apierr.RetryWithBackoff(
			context.Background(),
			apierr.RetryConfig{MaxRetries: -1},
			func() (string, error) {
				callCount++
				return "", errors.New("fails")
			},
			func(error) bool { return true },
		)

		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if callCount != 1 {
			t.Errorf("call count = %d, want 1", callCount)
		}
	})

	t.Run("OnRetry sees each retry attempt", func(t *testing.T) {
		t.Parallel()

		var attempts []int
		cfg := fastRetry(2)
		cfg.OnRetry = func(attempt int, err error) {
			attempts = append(attempts, attempt)
		}

		_, _ = apierr.RetryWithBackoff(
			context.Background(),
			cfg,
			func() (string, error) { return "", errors.New("fails") },
			func(error) bool { return true },
		)

		if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
			t.Errorf("OnRetry attempts = %v, want [1 2]", attempts)
		}
	})

	t.Run("already cancelled context returns after first call", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		callCount := 0
		_, err := apierr.RetryWithBackoff(
			ctx,
			apierr.RetryConfig{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: time.Minute},
			func() (string, error) {
				callCount++
				return "", errors.New("should retry")
			},
			func(error) bool { return true },
		)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if callCount != 1 {
			t.Errorf("call count = %d, want 1", callCount)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRetryWithBackoff_DefaultPolicy - nil shouldRetry uses IsRetryable
// ---------------------------------------------------------------------------

func TestRetryWithBackoff_DefaultPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCalls int
	}{
		{"rate limit is retried", errors.New("429 Too Many Requests"), 3},
		{"network error is retried", errors.New("dial tcp: connection refused"), 3},
		{"invalid key is not retried", errors.New("401 Unauthorized"), 1},
		{"insufficient credits is not retried", errors.New("Insufficient credits"), 1},
		{"unknown error is not retried", errors.New("something odd"), 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			callCount := 0
			_, err := apierr.RetryWithBackoff(
				context.Background(),
				fastRetry(2),
				func() (string, error) {
					callCount++
					return "", tt.err
				},
				nil,
			)

			if !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want wrapping %v", err, tt.err)
			}
			if callCount != tt.wantCalls {
				t.Errorf("call count = %d, want %d", callCount, tt.wantCalls)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	t.Parallel()

	cfg := apierr.DefaultRetryConfig()
	if cfg.MaxRetries != apierr.DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, apierr.DefaultMaxRetries)
	}
	if cfg.BaseDelay <= 0 || cfg.MaxDelay < cfg.BaseDelay {
		t.Errorf("invalid delays: base=%v max=%v", cfg.BaseDelay, cfg.MaxDelay)
	}
}
