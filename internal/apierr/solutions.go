package apierr

// Action identifies what the UI should do when a solution is chosen.
type Action string

// Solution actions.
const (
	ActionOpenURL       Action = "open_url"
	ActionOpenSettings  Action = "open_settings"
	ActionRetry         Action = "retry"
	ActionRetryLater    Action = "retry_later"
	ActionSuggestModels Action = "suggest_models"
	ActionWait          Action = "wait"
)

// Provider dashboard URLs referenced by solutions.
const (
	OpenRouterCreditsURL = "https://openrouter.ai/settings/credits"
	OpenRouterKeysURL    = "https://openrouter.ai/keys"
	OpenAIBillingURL     = "https://platform.openai.com/account/billing"
)

// FreeModels lists no-cost OpenRouter models offered as a fallback when the
// account is out of credits.
var FreeModels = []string{
	"meta-llama/llama-3.2-3b-instruct:free",
	"microsoft/phi-3-mini-128k-instruct:free",
	"google/gemma-2-9b-it:free",
}

// Solution is one remediation step offered to the user.
// At most one solution per list is Primary.
type Solution struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      Action   `json:"action"`
	URL         string   `json:"url,omitempty"`
	Models      []string `json:"models,omitempty"`
	Primary     bool     `json:"primary"`
}

// Solutions returns the remediation steps for a category, primary first.
// The returned slice is freshly allocated and safe to modify.
func Solutions(c Category) []Solution {
	switch c {
	case InsufficientCredits:
		return []Solution{
			{
				Title:       "Top up your OpenRouter account",
				Description: "Open the OpenRouter settings page to add credits",
				Action:      ActionOpenURL,
				URL:         OpenRouterCreditsURL,
				Primary:     true,
			},
			{
				Title:       "Use your own API key",
				Description: "Configure your own OpenAI or other provider key",
				Action:      ActionOpenSettings,
			},
			{
				Title:       "Try a free model",
				Description: "Switch to one of the available free models",
				Action:      ActionSuggestModels,
				Models:      append([]string(nil), FreeModels[:2]...),
			},
		}
	case InvalidAPIKey:
		return []Solution{
			{
				Title:       "Check your API key",
				Description: "Make sure the key was copied correctly",
				Action:      ActionOpenSettings,
				Primary:     true,
			},
			{
				Title:       "Regenerate your API key",
				Description: "Create a new key on the provider website",
				Action:      ActionOpenURL,
				URL:         OpenRouterKeysURL,
			},
		}
	case QuotaExceeded:
		return []Solution{
			{
				Title:       "Check your account balance",
				Description: "Confirm the account has enough balance",
				Action:      ActionOpenURL,
				URL:         OpenAIBillingURL,
				Primary:     true,
			},
			{
				Title:       "Wait for the quota to reset",
				Description: "The quota resets at the start of the next billing period",
				Action:      ActionWait,
			},
		}
	case RateLimit:
		return []Solution{
			{
				Title:       "Retry later",
				Description: "Wait a few minutes before trying again",
				Action:      ActionRetryLater,
				Primary:     true,
			},
			{
				Title:       "Upgrade your API plan",
				Description: "Move to a plan with higher rate limits",
				Action:      ActionOpenURL,
				URL:         OpenRouterCreditsURL,
			},
		}
	default:
		return []Solution{
			{
				Title:       "Retry the request",
				Description: "Try your request again in a moment",
				Action:      ActionRetry,
				Primary:     true,
			},
			{
				Title:       "Check your settings",
				Description: "Review your API configuration",
				Action:      ActionOpenSettings,
			},
		}
	}
}
