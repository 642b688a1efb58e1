package status

import "github.com/alnah/go-runstatus/internal/apierr"

// Fixed labels.
const (
	LabelProcessing      = "Processing"
	LabelApproval        = "Approval Request"
	LabelWaitingApproval = "Waiting for approval"
	LabelWaitingInput    = "Waiting for your input"
	LabelStopped         = "Task was stopped"
	LabelPausing         = "Pausing"
	LabelPaused          = "Paused"
	LabelResuming        = "Resuming"
)

// Presentation describes how to show a run status.
// Category is set only for states derived from an error classification.
type Presentation struct {
	Icon     Icon            `json:"icon"`
	Tone     Tone            `json:"tone"`
	Label    string          `json:"label"`
	Detail   string          `json:"detail,omitempty"`
	Category apierr.Category `json:"category,omitempty"`
}

// Input is the optional context that accompanies a run status.
type Input struct {
	ErrorText    string
	StopReason   string
	InputRequest *InputRequest
}

// Present maps a run status snapshot to its presentation.
// The second result is false for unknown statuses, meaning nothing should
// be rendered.
func Present(s RunStatus, in Input) (Presentation, bool) {
	switch s {
	case Active:
		return Presentation{Icon: IconSpinner, Tone: ToneAccent, Label: LabelProcessing}, true
	case AwaitingInput:
		return presentAwaiting(in.InputRequest), true
	case Complete, Error:
		// A completed run can still carry a terminal error; both states
		// render the classification the same way.
		return presentClassification(apierr.Classify(in.ErrorText)), true
	case Stopped:
		return Presentation{Icon: IconStop, Tone: ToneDanger, Label: LabelStopped, Detail: in.StopReason}, true
	case Pausing:
		return Presentation{Icon: IconSpinner, Tone: ToneAccent, Label: LabelPausing}, true
	case Paused:
		return Presentation{Icon: IconPause, Tone: ToneAccent, Label: LabelPaused}, true
	case Resuming:
		return Presentation{Icon: IconSpinner, Tone: ToneAccent, Label: LabelResuming}, true
	default:
		return Presentation{}, false
	}
}

func presentAwaiting(req *InputRequest) Presentation {
	if !req.IsApproval() {
		return Presentation{Icon: IconMessage, Tone: ToneAccent, Label: LabelWaitingInput}
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = LabelWaitingApproval
	}
	return Presentation{Icon: IconHelp, Tone: ToneAccent, Label: LabelApproval, Detail: prompt}
}

// presentClassification converts an error classification into a presentation.
func presentClassification(c apierr.Classification) Presentation {
	return Presentation{
		Icon:     CategoryIcon(c.Category),
		Tone:     CategoryTone(c.Category),
		Label:    c.Message,
		Detail:   c.Suggestion,
		Category: c.Category,
	}
}

// Text returns the label and detail joined for single-line display.
func (p Presentation) Text() string {
	if p.Detail == "" {
		return p.Label
	}
	return p.Label + ": " + p.Detail
}

// IsZero reports whether p is the empty presentation.
func (p Presentation) IsZero() bool {
	return p == Presentation{}
}
