package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DefaultWriteTimeout bounds a single websocket write when the context has
// no earlier deadline.
const DefaultWriteTimeout = 10 * time.Second

// ErrHubClosed indicates the hub no longer accepts subscribers.
var ErrHubClosed = errors.New("hub closed")

// Sender delivers a JSON-encodable message to everyone watching a run.
type Sender interface {
	Send(ctx context.Context, runID string, msg any) error
}

// Conn is the subset of *websocket.Conn the hub needs.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Compile-time interface compliance checks.
var (
	_ Conn   = (*websocket.Conn)(nil)
	_ Sender = (*Hub)(nil)
)

// subscriber serializes writes to one connection; websocket connections
// support a single concurrent writer.
type subscriber struct {
	mu   sync.Mutex
	conn Conn
}

func (s *subscriber) write(deadline time.Time, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans out run events to websocket subscribers.
// The zero value is not usable; use NewHub.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	closed bool

	logger       *zap.Logger
	writeTimeout time.Duration
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithHubLogger sets the logger used for delivery failures.
func WithHubLogger(l *zap.Logger) HubOption {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithWriteTimeout sets the per-write timeout.
func WithWriteTimeout(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:         make(map[string]map[*subscriber]struct{}),
		logger:       zap.NewNop(),
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers conn for events of runID. The returned function
// removes the subscription; it is safe to call more than once. The hub
// does not close conn on unsubscribe; the caller owns it until Close.
func (h *Hub) Subscribe(runID string, conn Conn) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &subscriber{conn: conn}
	if h.subs[runID] == nil {
		h.subs[runID] = make(map[*subscriber]struct{})
	}
	h.subs[runID][sub] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(runID, sub) })
	}, nil
}

func (h *Hub) remove(runID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs[runID], sub)
	if len(h.subs[runID]) == 0 {
		delete(h.subs, runID)
	}
}

// Subscribers returns the number of connections watching runID.
func (h *Hub) Subscribers(runID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[runID])
}

// Send encodes msg once and writes it to every subscriber of runID.
// Subscribers whose write fails are dropped and closed. Sending to a run
// nobody watches is not an error. The returned error joins all write
// failures.
func (h *Hub) Send(ctx context.Context, runID string, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs[runID]))
	for sub := range h.subs[runID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	deadline := time.Now().Add(h.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var errs []error
	for _, sub := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sub.write(deadline, data); err != nil {
			h.logger.Warn("dropping websocket subscriber",
				zap.String("run_id", runID),
				zap.Error(err))
			h.remove(runID, sub)
			_ = sub.conn.Close()
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every subscribed connection and rejects new subscribers.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	var errs []error
	for runID, subs := range h.subs {
		for sub := range subs {
			if err := sub.conn.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		delete(h.subs, runID)
	}
	return errors.Join(errs...)
}
