// Package server exposes classification and status presentation over HTTP
// and streams run error notifications to websocket subscribers.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-runstatus/internal/notify"
)

// Server timeouts.
const (
	ReadTimeout     = 15 * time.Second
	WriteTimeout    = 30 * time.Second
	IdleTimeout     = 60 * time.Second
	ShutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API. The zero value is not usable; use New.
type Server struct {
	hub        *notify.Hub
	middleware *notify.Middleware
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
	upgrader   websocket.Upgrader
	router     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for requests and notifications.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the generator for request and event ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithCheckOrigin sets the websocket origin check. By default all origins
// are accepted.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// New builds a Server with its hub, middleware and routes.
func New(opts ...Option) *Server {
	s := &Server{
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hub = notify.NewHub(notify.WithHubLogger(s.logger))
	s.middleware = notify.NewMiddleware(s.hub,
		notify.WithLogger(s.logger),
		notify.WithClock(s.now),
		notify.WithIDGenerator(s.newID),
	)
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/classify", s.handleClassify)
	api.POST("/present", s.handlePresent)
	api.POST("/runs/:run_id/errors", s.handleRunError)
	api.GET("/runs/:run_id/ws", s.handleSubscribe)

	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub that receives run notifications.
func (s *Server) Hub() *notify.Hub {
	return s.hub
}

// Middleware returns the stream error middleware bound to the hub.
func (s *Server) Middleware() *notify.Middleware {
	return s.middleware
}

// Run serves on addr until ctx is canceled, then shuts down gracefully
// and closes all websocket subscribers.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()

		// Hijacked websocket connections are not tracked by Shutdown.
		hubErr := s.hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if hubErr != nil {
			s.logger.Warn("closing websocket subscribers", zap.Error(hubErr))
		}
		return nil
	})

	return g.Wait()
}
