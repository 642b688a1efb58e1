package cli

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-runstatus/internal/config"
	"github.com/alnah/go-runstatus/internal/probe"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func(getenv func(string) string) (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load(getenv func(string) string) (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(getenv)
	}
	return config.Config{ListenAddr: config.DefaultListenAddr, LogLevel: config.DefaultLogLevel}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ProberFactory + Prober
// ---------------------------------------------------------------------------

type mockProberFactory struct {
	prober *mockProber
}

func (m *mockProberFactory) NewProber() Prober {
	if m.prober == nil {
		m.prober = &mockProber{}
	}
	return m.prober
}

type mockProber struct {
	ProbeAllFunc func(ctx context.Context, targets []probe.Target) ([]probe.Result, error)

	mu    sync.Mutex
	calls [][]probe.Target
}

func (m *mockProber) ProbeAll(ctx context.Context, targets []probe.Target) ([]probe.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]probe.Target(nil), targets...))
	m.mu.Unlock()

	if m.ProbeAllFunc != nil {
		return m.ProbeAllFunc(ctx, targets)
	}
	results := make([]probe.Result, len(targets))
	for i, t := range targets {
		results[i] = probe.Result{Provider: t.Provider, OK: true, Models: 1}
	}
	return results, nil
}

func (m *mockProber) Calls() [][]probe.Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]probe.Target(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock ServerFactory + Runner
// ---------------------------------------------------------------------------

type mockServerFactory struct {
	runner *mockRunner

	mu      sync.Mutex
	loggers []*zap.Logger
}

func (m *mockServerFactory) NewServer(logger *zap.Logger) Runner {
	m.mu.Lock()
	m.loggers = append(m.loggers, logger)
	m.mu.Unlock()

	if m.runner == nil {
		m.runner = &mockRunner{}
	}
	return m.runner
}

type mockRunner struct {
	RunFunc func(ctx context.Context, addr string) error

	mu    sync.Mutex
	addrs []string
}

func (m *mockRunner) Run(ctx context.Context, addr string) error {
	m.mu.Lock()
	m.addrs = append(m.addrs, addr)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, addr)
	}
	return nil
}

func (m *mockRunner) Addrs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.addrs...)
}

// ---------------------------------------------------------------------------
// Mock LoggerFactory
// ---------------------------------------------------------------------------

type mockLoggerFactory struct {
	Err error

	mu     sync.Mutex
	levels []zapcore.Level
}

func (m *mockLoggerFactory) NewLogger(level zapcore.Level) (*zap.Logger, error) {
	m.mu.Lock()
	m.levels = append(m.levels, level)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return zap.NewNop(), nil
}

func (m *mockLoggerFactory) Levels() []zapcore.Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]zapcore.Level(nil), m.levels...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*mockConfigLoader)(nil)
	_ ProberFactory = (*mockProberFactory)(nil)
	_ Prober        = (*mockProber)(nil)
	_ ServerFactory = (*mockServerFactory)(nil)
	_ Runner        = (*mockRunner)(nil)
	_ LoggerFactory = (*mockLoggerFactory)(nil)
)
