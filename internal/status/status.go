// Package status turns a snapshot of a run's lifecycle state into a
// renderer-neutral presentation: an icon token, a label, and optional
// detail text.
//
// The run lifecycle itself is tracked elsewhere; this package only maps a
// state it is handed. Unknown states are valid input and render nothing.
package status

import (
	"errors"
	"fmt"
)

// ErrInvalid indicates a run status name is not one of the known states.
var ErrInvalid = errors.New("invalid run status")

// RunStatus is the lifecycle state of a run as reported by the executor.
type RunStatus string

// Run states.
const (
	Active        RunStatus = "active"
	AwaitingInput RunStatus = "awaiting_input"
	Complete      RunStatus = "complete"
	Error         RunStatus = "error"
	Stopped       RunStatus = "stopped"
	Pausing       RunStatus = "pausing"
	Paused        RunStatus = "paused"
	Resuming      RunStatus = "resuming"
)

// All lists every known run state.
var All = []RunStatus{Active, AwaitingInput, Complete, Error, Stopped, Pausing, Paused, Resuming}

// Parse validates a run status name.
// Returns ErrInvalid for names outside the known set.
func Parse(s string) (RunStatus, error) {
	for _, st := range All {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown run status %q: %w", s, ErrInvalid)
}

// Known reports whether s is one of the known run states.
func (s RunStatus) Known() bool {
	_, err := Parse(string(s))
	return err == nil
}

// String returns the wire name of the status.
func (s RunStatus) String() string {
	return string(s)
}

// InputTypeApproval marks an input request that asks the user to approve
// or reject an action.
const InputTypeApproval = "approval"

// InputRequest describes the human decision a run is blocked on.
type InputRequest struct {
	InputType string `json:"input_type"`
	Prompt    string `json:"prompt,omitempty"`
}

// IsApproval reports whether the request asks for an approval.
// A nil request is not an approval.
func (r *InputRequest) IsApproval() bool {
	return r != nil && r.InputType == InputTypeApproval
}
