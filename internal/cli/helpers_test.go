package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-runstatus/internal/probe"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	prober       *mockProber
	server       *mockServerFactory
	logger       *mockLoggerFactory
}

func newTestMocks() *testMocks {
	return &testMocks{
		configLoader: &mockConfigLoader{},
		prober:       &mockProber{},
		server:       &mockServerFactory{runner: &mockRunner{}},
		logger:       &mockLoggerFactory{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stdin  io.Reader
	getenv func(string) string
	mocks  *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withTestStdin(s string) testEnvOption {
	return func(o *testEnvOptions) { o.stdin = strings.NewReader(s) }
}

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env, stdout, stderr and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *syncBuffer, *syncBuffer, *testMocks) {
	options := &testEnvOptions{
		stdin:  strings.NewReader(""),
		getenv: defaultTestEnv,
		mocks:  newTestMocks(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	env := &Env{
		Stdin:         options.stdin,
		Stdout:        stdout,
		Stderr:        stderr,
		Getenv:        options.getenv,
		Now:           fixedTime(testNow),
		ConfigLoader:  options.mocks.configLoader,
		ProberFactory: &mockProberFactory{prober: options.mocks.prober},
		ServerFactory: options.mocks.server,
		LoggerFactory: options.mocks.logger,
	}

	return env, stdout, stderr, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var testNow = time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// defaultTestEnv returns API keys for OpenAI and DeepSeek.
func defaultTestEnv(key string) string {
	switch key {
	case probe.EnvOpenAIAPIKey:
		return "test-openai-key"
	case probe.EnvDeepSeekAPIKey:
		return "test-deepseek-key"
	default:
		return ""
	}
}
