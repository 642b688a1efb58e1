package probe

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/alnah/go-runstatus/internal/apierr"
)

// DefaultMaxParallel bounds concurrent probes in ProbeAll.
const DefaultMaxParallel = 3

// ModelLister lists models. *openai.Client implements it.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Compile-time interface compliance check.
var _ ModelLister = (*openai.Client)(nil)

// ClientFactory builds the client used to probe a target.
type ClientFactory func(t Target) ModelLister

// Result is the outcome of probing one provider.
type Result struct {
	Provider Provider      `json:"provider"`
	OK       bool          `json:"ok"`
	Models   int           `json:"models"`
	Latency  time.Duration `json:"latency_ns"`
	Error    string        `json:"error,omitempty"`
	// Classification is set when the probe failed.
	Classification *apierr.Classification `json:"classification,omitempty"`

	Err error `json:"-"`
}

// Prober checks provider credentials by listing models.
type Prober struct {
	newClient   ClientFactory
	retry       apierr.RetryConfig
	maxParallel int
	now         func() time.Time
}

// Option configures a Prober.
type Option func(*Prober)

// WithClientFactory sets the client factory.
func WithClientFactory(f ClientFactory) Option {
	return func(p *Prober) {
		if f != nil {
			p.newClient = f
		}
	}
}

// WithRetryConfig sets the retry policy for each probe.
func WithRetryConfig(cfg apierr.RetryConfig) Option {
	return func(p *Prober) {
		p.retry = cfg
	}
}

// WithMaxParallel sets how many probes ProbeAll runs at once.
func WithMaxParallel(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.maxParallel = n
		}
	}
}

// WithClock sets the time source used to measure latency.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Prober backed by go-openai clients.
func New(opts ...Option) *Prober {
	p := &Prober{
		newClient:   newOpenAIClient,
		retry:       apierr.DefaultRetryConfig(),
		maxParallel: DefaultMaxParallel,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newOpenAIClient(t Target) ModelLister {
	cfg := openai.DefaultConfig(t.APIKey)
	cfg.BaseURL = t.baseURL()
	return openai.NewClientWithConfig(cfg)
}

// Probe lists the models of one target, retrying transient failures.
// The returned Result always names the provider; on failure it carries
// the error and its classification.
func (p *Prober) Probe(ctx context.Context, t Target) Result {
	res := Result{Provider: t.Provider}

	if t.APIKey == "" {
		return res.fail(fmt.Errorf("%s: %w", t.Provider, ErrEmptyAPIKey))
	}

	client := p.newClient(t)
	start := p.now()
	models, err := apierr.RetryWithBackoff(ctx, p.retry, func() (openai.ModelsList, error) {
		return client.ListModels(ctx)
	}, nil)
	res.Latency = p.now().Sub(start)

	if err != nil {
		return res.fail(err)
	}
	res.OK = true
	res.Models = len(models.Models)
	return res
}

func (r Result) fail(err error) Result {
	c := apierr.ClassifyError(err)
	r.OK = false
	r.Err = err
	r.Error = err.Error()
	r.Classification = &c
	return r
}

// ProbeAll probes every target concurrently and returns the results in
// target order. Individual failures are reported in the results; the
// error is non-nil only when ctx ends before all probes ran.
func (p *Prober) ProbeAll(ctx context.Context, targets []Target) ([]Result, error) {
	if len(targets) == 0 {
		return nil, nil
	}

	results := make([]Result, len(targets))
	sem := semaphore.NewWeighted(int64(p.maxParallel))
	g, ctx := errgroup.WithContext(ctx)

	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			results[i] = p.Probe(ctx, t)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
