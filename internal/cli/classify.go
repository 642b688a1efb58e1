package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-runstatus/internal/apierr"
	"github.com/alnah/go-runstatus/internal/format"
)

// classifyOptions holds the flags of the classify command.
type classifyOptions struct {
	statusCode int
	jsonOutput bool
}

// ClassifyCmd creates the classify command.
// The env parameter provides injectable dependencies for testing.
func ClassifyCmd(env *Env) *cobra.Command {
	var opts classifyOptions

	cmd := &cobra.Command{
		Use:   "classify [error text]",
		Short: "Classify an API error message",
		Long: `Classify an API error message into a category with a user-facing
message, a suggestion and remediation steps.

The error text is taken from the arguments, or from stdin when none are
given. Unrecognized errors are reported as "unknown" with the text
truncated to 100 characters.

Categories, checked in this order:
  insufficient_credits   payment required, 402
  invalid_api_key        invalid or unauthorized key, 401
  rate_limit             too many requests, 429
  network_error          connection, network, timeout
  quota_exceeded         quota, exceeded`,
		Example: `  runstatus classify "Error code: 429 - rate limit reached"
  runstatus classify --status-code 402 "upstream rejected the call"
  cat error.log | runstatus classify --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(env, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.statusCode, "status-code", 0, "HTTP status code of the failed call")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the full report as JSON")

	return cmd
}

// runClassify handles the classify command.
func runClassify(env *Env, args []string, opts classifyOptions) error {
	if opts.statusCode != 0 && (opts.statusCode < 100 || opts.statusCode > 599) {
		return fmt.Errorf("--status-code %d: %w", opts.statusCode, ErrInvalidStatusCode)
	}

	text, err := readInput(args, env.Stdin)
	if err != nil {
		return err
	}

	report := apierr.NewReport(text, opts.statusCode, env.Now())

	if opts.jsonOutput {
		return writeJSON(env.Stdout, report)
	}
	return writeLine(env.Stdout, format.Report(report))
}
