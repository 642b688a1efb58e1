package cli

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-runstatus/internal/config"
	"github.com/alnah/go-runstatus/internal/probe"
	"github.com/alnah/go-runstatus/internal/server"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Verbose raises the service log level to debug. Bound to the root
	// --verbose flag.
	Verbose bool

	// Factories for domain objects
	ConfigLoader  ConfigLoader
	ProberFactory ProberFactory
	ServerFactory ServerFactory
	LoggerFactory LoggerFactory
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	Load(getenv func(string) string) (config.Config, error)
}

// Prober probes provider credentials.
type Prober interface {
	ProbeAll(ctx context.Context, targets []probe.Target) ([]probe.Result, error)
}

// ProberFactory creates probers.
type ProberFactory interface {
	NewProber() Prober
}

// Runner serves the HTTP API until ctx is canceled.
type Runner interface {
	Run(ctx context.Context, addr string) error
}

// ServerFactory creates the HTTP service.
type ServerFactory interface {
	NewServer(logger *zap.Logger) Runner
}

// LoggerFactory builds the service logger.
type LoggerFactory interface {
	NewLogger(level zapcore.Level) (*zap.Logger, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithProberFactory sets the prober factory.
func WithProberFactory(f ProberFactory) EnvOption {
	return func(e *Env) {
		e.ProberFactory = f
	}
}

// WithServerFactory sets the server factory.
func WithServerFactory(f ServerFactory) EnvOption {
	return func(e *Env) {
		e.ServerFactory = f
	}
}

// WithLoggerFactory sets the logger factory.
func WithLoggerFactory(f LoggerFactory) EnvOption {
	return func(e *Env) {
		e.LoggerFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		Now:           time.Now,
		ConfigLoader:  &defaultConfigLoader{},
		ProberFactory: &defaultProberFactory{},
		ServerFactory: &defaultServerFactory{},
		LoggerFactory: &defaultLoggerFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(getenv func(string) string) (config.Config, error) {
	return config.Load(getenv)
}

// defaultProberFactory implements ProberFactory with go-openai clients.
type defaultProberFactory struct{}

func (defaultProberFactory) NewProber() Prober {
	return probe.New()
}

// defaultServerFactory implements ServerFactory with the gin service.
type defaultServerFactory struct{}

func (defaultServerFactory) NewServer(logger *zap.Logger) Runner {
	return server.New(server.WithLogger(logger))
}

// defaultLoggerFactory builds a JSON production logger at the given level.
type defaultLoggerFactory struct{}

func (defaultLoggerFactory) NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ ProberFactory = (*defaultProberFactory)(nil)
	_ ServerFactory = (*defaultServerFactory)(nil)
	_ LoggerFactory = (*defaultLoggerFactory)(nil)
	_ Prober        = (*probe.Prober)(nil)
	_ Runner        = (*server.Server)(nil)
)
