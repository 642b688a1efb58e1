// Package interrupt turns SIGINT/SIGTERM into context cancellation with a
// forced-exit escape hatch: the first signal cancels the context so the
// service can drain, a second one inside ForceWindow exits immediately.
package interrupt

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ExitInterrupt is the exit code for interrupt (130 = 128 + SIGINT).
const ExitInterrupt = 130

// ForceWindow is how soon after the first signal a second one forces exit.
const ForceWindow = 2 * time.Second

const (
	drainMessage = "\nShutting down (Ctrl+C again to force)..."
	forceMessage = "Forced shutdown."
)

// Handler watches for interrupt signals.
type Handler struct {
	mu     sync.Mutex
	first  time.Time
	count  int
	forced bool
	closed bool

	cancel context.CancelFunc
	done   chan struct{}

	exit   func(int)
	now    func() time.Time
	stderr io.Writer
}

// Options holds injectable dependencies for testing.
type Options struct {
	SigCh <-chan os.Signal
	Exit  func(int)
	Now   func() time.Time
	// Stderr must be safe for concurrent writes; os.Stderr is.
	Stderr io.Writer
}

// Watch starts listening for SIGINT/SIGTERM.
// The returned context is canceled on the first signal.
func Watch(parent context.Context) (*Handler, context.Context) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return WatchWithOptions(parent, Options{SigCh: sigCh})
}

// WatchWithOptions is Watch with injectable signal source, exit, clock
// and stderr.
func WatchWithOptions(parent context.Context, opts Options) (*Handler, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	h := &Handler{
		cancel: cancel,
		done:   make(chan struct{}),
		exit:   opts.Exit,
		now:    opts.Now,
		stderr: opts.Stderr,
	}
	if h.exit == nil {
		h.exit = os.Exit
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.stderr == nil {
		h.stderr = os.Stderr
	}

	if opts.SigCh != nil {
		go h.listen(opts.SigCh)
	}
	return h, ctx
}

func (h *Handler) listen(sigCh <-chan os.Signal) {
	for {
		select {
		case <-h.done:
			return
		case _, ok := <-sigCh:
			if !ok {
				return
			}
			if h.handle() {
				return
			}
		}
	}
}

// handle records one signal and reports whether listening should stop.
func (h *Handler) handle() bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return true
	}
	now := h.now()
	h.count++

	if h.count == 1 {
		h.first = now
		h.mu.Unlock()
		h.cancel()
		fmt.Fprintln(h.stderr, drainMessage)
		return false
	}

	if now.Sub(h.first) > ForceWindow {
		// Too late to count as a double press; restart the window.
		h.first = now
		h.mu.Unlock()
		fmt.Fprintln(h.stderr, drainMessage)
		return false
	}

	h.forced = true
	h.mu.Unlock()
	fmt.Fprintln(h.stderr, forceMessage)
	h.exit(ExitInterrupt)
	return true
}

// Interrupted reports whether at least one signal was received.
func (h *Handler) Interrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count > 0
}

// Forced reports whether a second signal forced exit.
func (h *Handler) Forced() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.forced
}

// Stop releases the signal handlers. Safe to call more than once.
func (h *Handler) Stop() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	signal.Reset(syscall.SIGINT, syscall.SIGTERM)
	h.cancel()
	close(h.done)
}
