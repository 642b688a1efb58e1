package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-runstatus/internal/format"
	"github.com/alnah/go-runstatus/internal/status"
)

// presentOptions holds the flags of the present command.
type presentOptions struct {
	errorText  string
	stopReason string
	inputType  string
	prompt     string
	jsonOutput bool
}

// PresentCmd creates the present command.
// The env parameter provides injectable dependencies for testing.
func PresentCmd(env *Env) *cobra.Command {
	var opts presentOptions

	cmd := &cobra.Command{
		Use:   "present <status>",
		Short: "Show how a run status is displayed",
		Long: `Show the icon, label and detail for a run status.

Statuses: active, awaiting_input, complete, error, stopped, pausing,
paused, resuming.

complete and error use --error to pick the message; stopped shows
--stop-reason; awaiting_input uses --input-type and --prompt.`,
		Example: `  runstatus present active
  runstatus present error --error "429 Too Many Requests"
  runstatus present awaiting_input --input-type approval --prompt "Deploy to prod?"
  runstatus present stopped --stop-reason "Cancelled by user" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresent(env, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.errorText, "error", "", "Error text of a complete or error run")
	cmd.Flags().StringVar(&opts.stopReason, "stop-reason", "", "Why a stopped run was stopped")
	cmd.Flags().StringVar(&opts.inputType, "input-type", "", "Input request type (approval, text, ...)")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Prompt of the input request")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the presentation as JSON")

	return cmd
}

// runPresent handles the present command.
func runPresent(env *Env, name string, opts presentOptions) error {
	// Unknown statuses are valid input and render nothing.
	s := status.RunStatus(name)

	in := status.Input{ErrorText: opts.errorText, StopReason: opts.stopReason}
	if opts.inputType != "" || opts.prompt != "" {
		if s != status.AwaitingInput {
			return fmt.Errorf("status %s: %w", s, ErrInvalidInputType)
		}
		in.InputRequest = &status.InputRequest{InputType: opts.inputType, Prompt: opts.prompt}
	}

	p, ok := status.Present(s, in)
	if !ok {
		return nil
	}

	if opts.jsonOutput {
		return writeJSON(env.Stdout, p)
	}
	return writeLine(env.Stdout, format.Presentation(p))
}
