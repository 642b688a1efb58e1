// Package format renders presentations, classifications and error reports
// as terminal text.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-runstatus/internal/apierr"
	"github.com/alnah/go-runstatus/internal/status"
)

// glyphs maps icon tokens to terminal glyphs.
var glyphs = map[status.Icon]string{
	status.IconSpinner:    "⟳",
	status.IconMessage:    "✉",
	status.IconHelp:       "?",
	status.IconStop:       "■",
	status.IconPause:      "⏸",
	status.IconAlert:      "⚠",
	status.IconCreditCard: "$",
	status.IconKey:        "⚿",
	status.IconClock:      "⏱",
	status.IconWifi:       "⌁",
	status.IconCheck:      "✓",
	status.IconPulse:      "●",
}

// Glyph returns the terminal glyph for an icon token.
// Unknown tokens render as a bullet.
func Glyph(icon status.Icon) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return "•"
}

// Presentation renders p on one line: glyph, label, and detail.
func Presentation(p status.Presentation) string {
	return Glyph(p.Icon) + " " + p.Text()
}

// Classification renders c on one or two lines; the suggestion, if any,
// goes on an indented second line.
func Classification(c apierr.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", Glyph(status.CategoryIcon(c.Category)), c.Category, c.Message)
	if c.HasSuggestion() {
		fmt.Fprintf(&b, "\n  Suggestion: %s", c.Suggestion)
	}
	return b.String()
}

// Report renders r as a multi-line block with numbered solutions.
// The primary solution is marked "(recommended)".
func Report(r apierr.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Glyph(status.CategoryIcon(r.ErrorType)), r.Title)
	if r.Message != "" {
		fmt.Fprintf(&b, "%s\n", r.Message)
	}

	if r.HasSolutions() {
		b.WriteString("\nSolutions:\n")
		for i, s := range r.Solutions {
			fmt.Fprintf(&b, "  %d. %s", i+1, s.Title)
			if s.Primary {
				b.WriteString(" (recommended)")
			}
			fmt.Fprintf(&b, "\n     %s\n", s.Description)
			if s.URL != "" {
				fmt.Fprintf(&b, "     %s\n", s.URL)
			}
			if len(s.Models) > 0 {
				fmt.Fprintf(&b, "     Models: %s\n", strings.Join(s.Models, ", "))
			}
		}
	}

	fmt.Fprintf(&b, "\nDetails: %s\n", r.OriginalError)
	if r.StatusCode > 0 {
		fmt.Fprintf(&b, "HTTP status: %d\n", r.StatusCode)
	}
	return b.String()
}

// Latency formats a request duration for human display.
// Examples: "850ms", "1.2s", "2m05s"
func Latency(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}
