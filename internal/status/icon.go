package status

import "github.com/alnah/go-runstatus/internal/apierr"

// Icon is a renderer-neutral icon token. Renderers map tokens to glyphs,
// SVGs, or component names.
type Icon string

// Icon tokens.
const (
	IconSpinner    Icon = "spinner"
	IconMessage    Icon = "message"
	IconHelp       Icon = "help"
	IconStop       Icon = "stop"
	IconPause      Icon = "pause"
	IconAlert      Icon = "alert"
	IconCreditCard Icon = "credit_card"
	IconKey        Icon = "key"
	IconClock      Icon = "clock"
	IconWifi       Icon = "wifi"
	IconCheck      Icon = "check"
	IconPulse      Icon = "pulse"
)

// Tone is the severity hint for coloring an icon.
type Tone string

// Tones.
const (
	ToneAccent  Tone = "accent"
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneCaution Tone = "caution"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
)

// CategoryIcon maps an error category to its icon token.
func CategoryIcon(c apierr.Category) Icon {
	switch c {
	case apierr.InsufficientCredits:
		return IconCreditCard
	case apierr.InvalidAPIKey:
		return IconKey
	case apierr.RateLimit:
		return IconClock
	case apierr.NetworkError:
		return IconWifi
	default:
		return IconAlert
	}
}

// CategoryTone maps an error category to its tone.
func CategoryTone(c apierr.Category) Tone {
	switch c {
	case apierr.InsufficientCredits, apierr.QuotaExceeded:
		return ToneWarning
	case apierr.RateLimit:
		return ToneCaution
	case apierr.NetworkError:
		return ToneInfo
	default:
		return ToneDanger
	}
}
