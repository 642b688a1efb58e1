package cli

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-runstatus/internal/config"
)

// ServeCmd creates the serve command.
// The env parameter provides injectable dependencies for testing.
func ServeCmd(env *Env) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Routes:
  GET  /health                   liveness
  POST /api/classify             {"error", "status_code"} -> error report
  POST /api/present              {"status", "error", "stop_reason", "input_request"}
  POST /api/runs/:run_id/errors  {"error"} -> notify run subscribers
  GET  /api/runs/:run_id/ws      websocket subscription to run notifications

The listen address comes from --addr, then the listen-addr setting
(env: RUNSTATUS_LISTEN_ADDR), then :8080. Logs are JSON on stderr at the
log-level setting (env: RUNSTATUS_LOG_LEVEL), or debug with --verbose.`,
		Example: `  runstatus serve
  runstatus serve --addr 127.0.0.1:9090 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), env, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (host:port)")

	return cmd
}

// runServe handles the serve command.
func runServe(ctx context.Context, env *Env, addr string) error {
	cfg, err := env.ConfigLoader.Load(env.Getenv)
	if err != nil {
		return err
	}

	if addr == "" {
		addr = cfg.ListenAddr
	} else if _, err := config.Validate(config.KeyListenAddr, addr); err != nil {
		return fmt.Errorf("--addr: %w", err)
	}

	level := cfg.Level()
	if env.Verbose {
		level = zapcore.DebugLevel
	}

	logger, err := env.LoggerFactory.NewLogger(level)
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(gin.ReleaseMode)

	fmt.Fprintf(env.Stderr, "Serving on %s (Ctrl+C to stop)\n", addr)
	logger.Debug("starting server", zap.String("addr", addr), zap.Stringer("level", level))

	if err := env.ServerFactory.NewServer(logger).Run(ctx, addr); err != nil {
		return err
	}

	fmt.Fprintln(env.Stderr, "Server stopped.")
	return nil
}
