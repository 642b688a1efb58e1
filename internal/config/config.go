package config

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config keys.
const (
	KeyListenAddr = "listen-addr"
	KeyLogLevel   = "log-level"
)

// Keys lists every supported configuration key.
var Keys = []string{KeyListenAddr, KeyLogLevel}

// Environment variable fallbacks.
const (
	EnvListenAddr = "RUNSTATUS_LISTEN_ADDR"
	EnvLogLevel   = "RUNSTATUS_LOG_LEVEL"
)

// Defaults applied when neither file nor environment set a value.
const (
	DefaultListenAddr = ":8080"
	DefaultLogLevel   = "info"
)

// ErrInvalidValue indicates a configuration value failed validation.
var ErrInvalidValue = errors.New("invalid config value")

// Config holds user configuration loaded from ~/.config/go-runstatus/config.
type Config struct {
	ListenAddr string
	LogLevel   string
}

// EnvFor returns the environment variable that backs key, or "".
func EnvFor(key string) string {
	switch key {
	case KeyListenAddr:
		return EnvListenAddr
	case KeyLogLevel:
		return EnvLogLevel
	default:
		return ""
	}
}

// IsValidKey reports whether key is a supported configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(Keys, key)
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-runstatus.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-runstatus"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-runstatus"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks,
// then defaults. A missing file is not an error.
func Load(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	if data, err := parseFile(p); err == nil {
		cfg.ListenAddr = data[KeyListenAddr]
		cfg.LogLevel = data[KeyLogLevel]
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = getenv(EnvListenAddr)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = getenv(EnvLogLevel)
	}

	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// Level returns the zap level for LogLevel, falling back to info when the
// value does not parse.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Validate checks value for key. It returns the normalized value to store.
func Validate(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyListenAddr:
		if err := validListenAddr(value); err != nil {
			return "", fmt.Errorf("%s %q: %w: %w", key, value, ErrInvalidValue, err)
		}
		return value, nil
	case KeyLogLevel:
		lvl, err := zapcore.ParseLevel(value)
		if err != nil {
			return "", fmt.Errorf("%s %q: %w", key, value, ErrInvalidValue)
		}
		return lvl.String(), nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
}

// validListenAddr accepts host:port or :port with a numeric port.
func validListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("port %q out of range", port)
	}
	return nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, _ := parseFile(p)
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = value

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted.
func writeFile(p string, data map[string]string) error {
	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns all config values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	return data, nil
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	return dir()
}
