// Package notify delivers run error notifications to websocket subscribers.
//
// When a run's stream fails with a provider API error, subscribers receive
// an api_error event with the full report, followed by a system chat
// message summarizing it. If delivery fails, a generic error event is
// attempted instead so the client is not left waiting.
package notify

import (
	"time"

	"github.com/alnah/go-runstatus/internal/apierr"
)

// EventType tags every event sent to subscribers.
type EventType string

// Event types.
const (
	EventAPIError EventType = "api_error"
	EventMessage  EventType = "message"
	EventError    EventType = "error"
)

// SourceSystem is the message source for notices generated by the server.
const SourceSystem = "system"

// GenericErrorText is sent when the detailed notification cannot be.
const GenericErrorText = "An error occurred while processing your request"

// APIErrorEvent carries the full error report for a run.
type APIErrorEvent struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	RunID     string        `json:"run_id"`
	ErrorInfo apierr.Report `json:"error_info"`
	Timestamp time.Time     `json:"timestamp"`
}

// MessageEvent is a chat message injected into the run transcript.
type MessageEvent struct {
	Type      EventType   `json:"type"`
	Data      MessageData `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// MessageData is the payload of a MessageEvent.
type MessageData struct {
	Source   string          `json:"source"`
	Content  string          `json:"content"`
	Metadata MessageMetadata `json:"metadata"`
}

// MessageMetadata marks a system message as user-visible and links it to
// the error category it summarizes.
type MessageMetadata struct {
	Internal     string          `json:"internal"`
	ErrorType    apierr.Category `json:"error_type"`
	HasSolutions bool            `json:"has_solutions"`
}

// ErrorEvent is the minimal error notice.
type ErrorEvent struct {
	Type      EventType `json:"type"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAPIErrorEvent wraps a report for delivery.
func NewAPIErrorEvent(id, runID string, r apierr.Report) APIErrorEvent {
	return APIErrorEvent{
		ID:        id,
		Type:      EventAPIError,
		RunID:     runID,
		ErrorInfo: r,
		Timestamp: r.Timestamp,
	}
}

// NewSystemMessage builds the chat notice for a report.
func NewSystemMessage(r apierr.Report) MessageEvent {
	return MessageEvent{
		Type: EventMessage,
		Data: MessageData{
			Source:  SourceSystem,
			Content: r.Summary(),
			Metadata: MessageMetadata{
				Internal:     "no",
				ErrorType:    r.ErrorType,
				HasSolutions: r.HasSolutions(),
			},
		},
		Timestamp: r.Timestamp,
	}
}

// NewErrorEvent builds a minimal error notice.
func NewErrorEvent(text string, now time.Time) ErrorEvent {
	return ErrorEvent{Type: EventError, Error: text, Timestamp: now.UTC()}
}
