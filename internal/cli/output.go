package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxStdinBytes bounds error text read from stdin.
const maxStdinBytes = 1 << 20

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeLine writes s followed by a newline.
func writeLine(w io.Writer, s string) error {
	if _, err := fmt.Fprintln(w, strings.TrimRight(s, "\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readInput returns the joined args, or all of r when there are none.
// Trailing newlines from piped input are dropped.
func readInput(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if r == nil {
		return "", nil
	}

	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > maxStdinBytes {
		return "", fmt.Errorf("stdin exceeds %d bytes: %w", maxStdinBytes, ErrInputTooLarge)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
