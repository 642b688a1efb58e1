package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alnah/go-runstatus/internal/apierr"
	"github.com/alnah/go-runstatus/internal/format"
	"github.com/alnah/go-runstatus/internal/probe"
	"github.com/alnah/go-runstatus/internal/status"
)

// checkOptions holds the flags of the check command.
type checkOptions struct {
	providers  []string
	jsonOutput bool
}

// CheckCmd creates the check command.
// The env parameter provides injectable dependencies for testing.
func CheckCmd(env *Env) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify provider API keys",
		Long: `Verify provider API keys by listing each provider's models.

Keys are read from the environment (or a .env file):
  OPENAI_API_KEY        OpenAI
  OPENROUTER_API_KEY    OpenRouter
  DEEPSEEK_API_KEY      DeepSeek

Transient failures (rate limits, network errors) are retried with
backoff. Failures are classified with the same guidance a failed run
would show.`,
		Example: `  runstatus check
  runstatus check --provider openrouter
  runstatus check --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), env, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.providers, "provider", "p", nil, "Only check these providers (openai, openrouter, deepseek)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print results as JSON")

	return cmd
}

// runCheck handles the check command.
func runCheck(ctx context.Context, env *Env, opts checkOptions) error {
	targets, err := selectTargets(env.Getenv, opts.providers)
	if err != nil {
		return err
	}

	if !opts.jsonOutput {
		fmt.Fprintf(env.Stderr, "Checking %d provider(s)...\n", len(targets))
	}

	results, err := env.ProberFactory.NewProber().ProbeAll(ctx, targets)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		if err := writeJSON(env.Stdout, results); err != nil {
			return err
		}
	} else if err := writeResults(env.Stdout, results); err != nil {
		return err
	}

	return checkFailure(results)
}

// selectTargets keeps the providers with keys in the environment,
// restricted to names when given.
func selectTargets(getenv func(string) string, names []string) ([]probe.Target, error) {
	targets := probe.TargetsFromEnv(getenv)

	if len(names) > 0 {
		wanted := make(map[probe.Provider]bool, len(names))
		for _, n := range names {
			p, err := probe.ParseProvider(n)
			if err != nil {
				return nil, err
			}
			wanted[p] = true
		}

		filtered := targets[:0]
		for _, t := range targets {
			if wanted[t.Provider] {
				filtered = append(filtered, t)
			}
		}
		targets = filtered
	}

	if len(targets) == 0 {
		return nil, probe.ErrNoProviderKey
	}
	return targets, nil
}

func writeResults(w io.Writer, results []probe.Result) error {
	for _, r := range results {
		var line string
		if r.OK {
			line = fmt.Sprintf("%s %-10s %d models (%s)",
				format.Glyph(status.IconCheck), r.Provider, r.Models, format.Latency(r.Latency))
		} else {
			line = fmt.Sprintf("%-12s %s", r.Provider, format.Classification(*r.Classification))
		}
		if err := writeLine(w, line); err != nil {
			return err
		}
	}
	return nil
}

// checkFailure returns nil when every probe succeeded. Otherwise the error
// wraps ErrProbeFailed and the category sentinel of the first failure.
func checkFailure(results []probe.Result) error {
	var failed int
	var first error
	for _, r := range results {
		if r.OK {
			continue
		}
		failed++
		if first == nil {
			first = fmt.Errorf("%s: %w", r.Provider, apierr.Wrap(r.Err))
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d providers failed: %w: %w", failed, len(results), ErrProbeFailed, first)
}
