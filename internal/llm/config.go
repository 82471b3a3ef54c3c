// Package llm is a small client for OpenAI-compatible chat completion APIs
// (OpenAI itself, OpenRouter, or any self-hosted endpoint speaking the same
// protocol) and the tolerant parsing needed to turn model output into moves.
package llm

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider selects defaults for the base URL and credentials
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
)

const (
	openAIBaseURL     = "https://api.openai.com/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	DefaultTimeout   = 45 * time.Second
	DefaultMaxTokens = 300
)

var (
	ErrMissingAPIKey = errors.New("API key missing: set OPENAI_API_KEY or OPENROUTER_API_KEY")
	ErrMissingModel  = errors.New("model missing: set LLM_MODEL or pass a model")
)

// Config holds everything needed to talk to one chat completions endpoint
type Config struct {
	Provider     Provider
	BaseURL      string
	APIKey       string
	Model        string
	Organization string
	Temperature  *float64
	MaxTokens    int
	Timeout      time.Duration
	// JSONMode asks the endpoint for a JSON object response. Some self-hosted
	// servers reject the response_format field, so it can be switched off.
	JSONMode     bool
	ExtraHeaders map[string]string
}

// ConfigFromEnv resolves a configuration for model from the environment.
// An empty model falls back to LLM_MODEL. The provider is OpenRouter when
// only an OpenRouter key is present, the model is prefixed "openrouter/", or
// the base URL points at openrouter.ai; LLM_PROVIDER overrides detection.
func ConfigFromEnv(model string) (Config, error) {
	cfg := Config{
		Provider:     ProviderOpenAI,
		Model:        strings.TrimSpace(model),
		MaxTokens:    DefaultMaxTokens,
		Timeout:      DefaultTimeout,
		JSONMode:     true,
		ExtraHeaders: map[string]string{},
	}
	if cfg.Model == "" {
		cfg.Model = env("LLM_MODEL")
	}
	if cfg.Model == "" {
		return Config{}, ErrMissingModel
	}

	openAIKey, openRouterKey := env("OPENAI_API_KEY"), env("OPENROUTER_API_KEY")
	base := strings.TrimRight(env("LLM_BASE_URL"), "/")

	switch {
	case openRouterKey != "" && openAIKey == "",
		strings.HasPrefix(strings.ToLower(cfg.Model), "openrouter/"),
		strings.Contains(strings.ToLower(base), "openrouter"):
		cfg.Provider = ProviderOpenRouter
	}
	switch strings.ToLower(env("LLM_PROVIDER")) {
	case string(ProviderOpenAI):
		cfg.Provider = ProviderOpenAI
	case string(ProviderOpenRouter):
		cfg.Provider = ProviderOpenRouter
	}
	cfg.Model = strings.TrimPrefix(cfg.Model, "openrouter/")

	cfg.BaseURL = base
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIBaseURL
		if cfg.Provider == ProviderOpenRouter {
			cfg.BaseURL = openRouterBaseURL
		}
	}

	cfg.APIKey = firstNonEmpty(openAIKey, openRouterKey)
	if cfg.Provider == ProviderOpenRouter {
		cfg.APIKey = firstNonEmpty(openRouterKey, openAIKey)
		if v := env("OPENROUTER_SITE_URL"); v != "" {
			cfg.ExtraHeaders["HTTP-Referer"] = v
		}
		if v := env("OPENROUTER_TITLE"); v != "" {
			cfg.ExtraHeaders["X-Title"] = v
		}
	}
	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	cfg.Organization = env("OPENAI_ORG")

	if v := env("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = &f
		}
	}
	if v := env("LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := env("LLM_JSON_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.JSONMode = b
		}
	}
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
