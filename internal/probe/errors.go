package probe

import "errors"

var (
	// ErrUnknownProvider indicates a provider name is not supported.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoProviderKey indicates no provider API key is configured.
	ErrNoProviderKey = errors.New("no provider API key set (OPENAI_API_KEY, OPENROUTER_API_KEY or DEEPSEEK_API_KEY)")

	// ErrEmptyAPIKey indicates a target has no API key.
	ErrEmptyAPIKey = errors.New("API key is required")
)
