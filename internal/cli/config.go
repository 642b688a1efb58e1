package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alnah/go-runstatus/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-runstatus/config.
Settings can also be overridden via environment variables.

Supported settings:
  listen-addr   Address for "serve" (env: RUNSTATUS_LISTEN_ADDR, default :8080)
  log-level     Service log level (env: RUNSTATUS_LOG_LEVEL, default info)`,
		Example: `  runstatus config set listen-addr 127.0.0.1:9090
  runstatus config get log-level
  runstatus config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Supported keys:
  listen-addr   host:port or :port
  log-level     debug, info, warn, error`,
		Example: `  runstatus config set listen-addr :9090
  runstatus config set log-level debug`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  runstatus config get listen-addr`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable overrides.`,
		Example: `  runstatus config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !config.IsValidKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, config.Keys)
	}

	normalized, err := config.Validate(key, value)
	if err != nil {
		return err
	}

	if err := config.Save(key, normalized); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, normalized)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !config.IsValidKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, config.Keys)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		value = env.Getenv(config.EnvFor(key))
	}

	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	for _, key := range config.Keys {
		if _, ok := data[key]; ok {
			continue
		}
		if envVal := env.Getenv(config.EnvFor(key)); envVal != "" {
			data[key] = envVal + " (from env)"
		}
	}

	if len(data) == 0 {
		fmt.Fprintln(env.Stdout, "No configuration set.")
		fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range config.Keys {
			fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		fmt.Fprintf(env.Stdout, "%s=%s\n", key, data[key])
	}
	return nil
}
