package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-runstatus/internal/apierr"
	"github.com/alnah/go-runstatus/internal/cli"
	"github.com/alnah/go-runstatus/internal/config"
	"github.com/alnah/go-runstatus/internal/interrupt"
	"github.com/alnah/go-runstatus/internal/probe"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitAPI        = 5
	ExitInterrupt  = interrupt.ExitInterrupt
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// First Ctrl+C drains, second one exits.
	handler, ctx := interrupt.Watch(context.Background())
	defer handler.Stop()

	env := cli.DefaultEnv()

	rootCmd := &cobra.Command{
		Use:     "runstatus",
		Short:   "Classify API errors and present run statuses",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().BoolVarP(&env.Verbose, "verbose", "v", false, "Debug logging for serve")

	rootCmd.AddCommand(cli.ClassifyCmd(env))
	rootCmd.AddCommand(cli.PresentCmd(env))
	rootCmd.AddCommand(cli.CheckCmd(env))
	rootCmd.AddCommand(cli.ServeCmd(env))
	rootCmd.AddCommand(cli.ConfigCmd(env))

	err := rootCmd.ExecuteContext(ctx)
	if err == nil && handler.Interrupted() {
		err = context.Canceled
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		handler.Stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Sentinels go before the message patterns: provider text can contain
	// anything, including cobra's wording.
	if errors.Is(err, cli.ErrProbeFailed) || errors.Is(err, apierr.ErrInsufficientCredits) ||
		errors.Is(err, apierr.ErrAuthFailed) || errors.Is(err, apierr.ErrRateLimit) ||
		errors.Is(err, apierr.ErrNetwork) || errors.Is(err, apierr.ErrQuotaExceeded) {
		return ExitAPI
	}

	if errors.Is(err, probe.ErrNoProviderKey) {
		return ExitSetup
	}

	if errors.Is(err, probe.ErrUnknownProvider) ||
		errors.Is(err, config.ErrInvalidValue) || errors.Is(err, cli.ErrInvalidStatusCode) ||
		errors.Is(err, cli.ErrInvalidInputType) || errors.Is(err, cli.ErrInputTooLarge) {
		return ExitValidation
	}

	// Cobra doesn't expose typed errors, so we check for known message patterns.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
