package status

// FinalAnswerAwaitingInput is a session-level state: the run produced its
// final answer and the session waits for a follow-up. It never appears as a
// RunStatus.
const FinalAnswerAwaitingInput = "final_answer_awaiting_input"

// Indicator is the compact icon shown next to a session in a list.
type Indicator struct {
	Icon Icon `json:"icon"`
	Tone Tone `json:"tone"`
}

// SessionIndicator returns the list indicator for a session status.
// Only states that need attention get one; the rest report false.
func SessionIndicator(s string) (Indicator, bool) {
	switch s {
	case string(AwaitingInput):
		return Indicator{Icon: IconPulse, Tone: ToneDanger}, true
	case string(Active):
		return Indicator{Icon: IconSpinner, Tone: ToneAccent}, true
	case FinalAnswerAwaitingInput:
		return Indicator{Icon: IconCheck, Tone: ToneSuccess}, true
	case string(Error):
		return Indicator{Icon: IconAlert, Tone: ToneDanger}, true
	}
	return Indicator{}, false
}
