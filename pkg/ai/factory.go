// Package ai provides factory functions for creating chat backends
package ai

import (
	"strings"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/config"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

const (
	// NebiusBaseURL is the Nebius OpenAI-compatible endpoint
	NebiusBaseURL = "https://api.tokenfactory.nebius.com/v1/"
	// DefaultNebiusModel is used when NEBIUS_MODEL is unset
	DefaultNebiusModel = "meta-llama/Meta-Llama-3.1-8B-Instruct"
	// OpenAIBaseURL is the OpenAI endpoint
	OpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultOpenAIModel is the OpenAI model
	DefaultOpenAIModel = "gpt-4.1-mini"
)

// ErrNoProvider is returned when no API key is configured
var ErrNoProvider = errors.ConfigError("Set NEBIUS_API_KEY or OPENAI_API_KEY", nil)

// ResolveSettings picks the provider and model for cfg. With provider "auto"
// (or empty) Nebius wins when its key is present, then OpenAI.
func ResolveSettings(cfg config.LLMConfig) (Settings, error) {
	s := Settings{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "auto":
		switch {
		case cfg.NebiusAPIKey != "":
			s.Provider = ProviderNebius
		case cfg.OpenAIAPIKey != "":
			s.Provider = ProviderOpenAI
		default:
			return Settings{}, ErrNoProvider
		}
	case string(ProviderNebius):
		if cfg.NebiusAPIKey == "" {
			return Settings{}, errors.ConfigError("Set NEBIUS_API_KEY", nil)
		}
		s.Provider = ProviderNebius
	case string(ProviderOpenAI):
		if cfg.OpenAIAPIKey == "" {
			return Settings{}, errors.ConfigError("Set OPENAI_API_KEY", nil)
		}
		s.Provider = ProviderOpenAI
	default:
		return Settings{}, errors.ConfigError("unsupported llm provider: "+cfg.Provider, nil)
	}

	if s.Provider == ProviderNebius {
		s.APIKey = cfg.NebiusAPIKey
		s.BaseURL = NebiusBaseURL
		s.Model = cfg.NebiusModel
		if s.Model == "" {
			s.Model = DefaultNebiusModel
		}
	} else {
		s.APIKey = cfg.OpenAIAPIKey
		s.BaseURL = OpenAIBaseURL
		s.Model = DefaultOpenAIModel
	}

	if cfg.Model != "" {
		s.Model = cfg.Model
	}
	if cfg.BaseURL != "" {
		s.BaseURL = cfg.BaseURL
	}
	return s, nil
}

// NewFromConfig creates a chat backend from the llm config section
func NewFromConfig(cfg config.LLMConfig) (Brain, error) {
	s, err := ResolveSettings(cfg)
	if err != nil {
		return nil, err
	}
	return NewChatClient(s), nil
}
