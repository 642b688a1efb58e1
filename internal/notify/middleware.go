package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-runstatus/internal/apierr"
)

// StreamErrorHandler handles a failure of a run's event stream.
type StreamErrorHandler func(ctx context.Context, runID string, err error) error

// Middleware turns run stream errors into subscriber notifications.
// Provider API errors get a full report; other errors go to the fallback
// handler, which by default sends a plain error event.
type Middleware struct {
	sender   Sender
	fallback StreamErrorHandler
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// MiddlewareOption configures a Middleware.
type MiddlewareOption func(*Middleware)

// WithFallback sets the handler for errors that are not provider API errors.
func WithFallback(h StreamErrorHandler) MiddlewareOption {
	return func(m *Middleware) {
		if h != nil {
			m.fallback = h
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) MiddlewareOption {
	return func(m *Middleware) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source used for report timestamps.
func WithClock(now func() time.Time) MiddlewareOption {
	return func(m *Middleware) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator sets the event id generator.
func WithIDGenerator(fn func() string) MiddlewareOption {
	return func(m *Middleware) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewMiddleware creates a Middleware delivering through sender.
func NewMiddleware(sender Sender, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		sender: sender,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	m.fallback = m.sendPlainError
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HandleStreamError notifies subscribers of runID about err.
//
// For provider API errors it sends an api_error event and then a system
// message. If either delivery fails, it attempts a generic error event and
// returns the delivery error. Other errors are passed to the fallback
// handler.
func (m *Middleware) HandleStreamError(ctx context.Context, runID string, err error) error {
	if err == nil {
		return nil
	}
	if !apierr.IsAPIError(err) {
		return m.fallback(ctx, runID, err)
	}

	m.logger.Error("api error in run stream",
		zap.String("run_id", runID),
		zap.Error(err))

	report := apierr.NewReport(err.Error(), apierr.StatusCode(err), m.now())

	if sendErr := m.sender.Send(ctx, runID, NewAPIErrorEvent(m.newID(), runID, report)); sendErr != nil {
		return m.deliveryFailed(ctx, runID, sendErr)
	}
	if sendErr := m.sender.Send(ctx, runID, NewSystemMessage(report)); sendErr != nil {
		return m.deliveryFailed(ctx, runID, sendErr)
	}
	return nil
}

// deliveryFailed sends the generic notice after a failed delivery. The
// generic send is best effort; its own failure is only logged.
func (m *Middleware) deliveryFailed(ctx context.Context, runID string, sendErr error) error {
	m.logger.Error("failed to deliver api error notification",
		zap.String("run_id", runID),
		zap.Error(sendErr))

	if err := m.sender.Send(ctx, runID, NewErrorEvent(GenericErrorText, m.now())); err != nil {
		m.logger.Warn("failed to deliver fallback error notification",
			zap.String("run_id", runID),
			zap.Error(err))
	}
	return fmt.Errorf("deliver api error for run %s: %w", runID, sendErr)
}

// sendPlainError is the default fallback: forward the error text as is.
func (m *Middleware) sendPlainError(ctx context.Context, runID string, err error) error {
	return m.sender.Send(ctx, runID, NewErrorEvent(err.Error(), m.now()))
}
