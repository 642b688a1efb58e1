// Package probe checks that LLM provider credentials work by listing the
// provider's models through its OpenAI-compatible API. Failures are
// classified with apierr so callers can show the same guidance a failed
// run would show.
package probe

import (
	"fmt"
	"strings"
)

// Provider names an OpenAI-compatible LLM provider.
type Provider string

// Supported providers.
const (
	OpenAI     Provider = "openai"
	OpenRouter Provider = "openrouter"
	DeepSeek   Provider = "deepseek"
)

// Providers lists every supported provider in probe order.
var Providers = []Provider{OpenAI, OpenRouter, DeepSeek}

// Environment variables holding provider API keys.
const (
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvDeepSeekAPIKey   = "DEEPSEEK_API_KEY"
)

// Base URLs of the OpenAI-compatible endpoints.
const (
	openAIBaseURL     = "https://api.openai.com/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	deepSeekBaseURL   = "https://api.deepseek.com"
)

// ParseProvider validates a provider name. Matching is case-insensitive.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%q (use openai, openrouter or deepseek): %w", s, ErrUnknownProvider)
}

// String returns the provider name.
func (p Provider) String() string {
	return string(p)
}

// BaseURL returns the API base URL of the provider, or "" if unknown.
func (p Provider) BaseURL() string {
	switch p {
	case OpenAI:
		return openAIBaseURL
	case OpenRouter:
		return openRouterBaseURL
	case DeepSeek:
		return deepSeekBaseURL
	default:
		return ""
	}
}

// EnvKey returns the environment variable holding the provider's API key.
func (p Provider) EnvKey() string {
	switch p {
	case OpenAI:
		return EnvOpenAIAPIKey
	case OpenRouter:
		return EnvOpenRouterAPIKey
	case DeepSeek:
		return EnvDeepSeekAPIKey
	default:
		return ""
	}
}

// Target is one provider to probe.
type Target struct {
	Provider Provider
	APIKey   string
	// BaseURL overrides the provider's default endpoint when set.
	BaseURL string
}

func (t Target) baseURL() string {
	if t.BaseURL != "" {
		return strings.TrimSuffix(t.BaseURL, "/")
	}
	return t.Provider.BaseURL()
}

// TargetsFromEnv returns a target for every provider whose API key is set,
// in Providers order.
func TargetsFromEnv(getenv func(string) string) []Target {
	var targets []Target
	for _, p := range Providers {
		if key := strings.TrimSpace(getenv(p.EnvKey())); key != "" {
			targets = append(targets, Target{Provider: p, APIKey: key})
		}
	}
	return targets
}
