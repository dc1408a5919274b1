// Package ai provides the language model backends used to summarize a
// repository context.
package ai

import (
	"context"
	"time"
)

// Provider identifies an OpenAI-compatible model host
type Provider string

const (
	// ProviderNebius uses Nebius Token Factory
	ProviderNebius Provider = "nebius"
	// ProviderOpenAI uses the OpenAI API
	ProviderOpenAI Provider = "openai"
)

// Brain is the abstraction interface for chat models
type Brain interface {
	// Chat sends the conversation and returns the assistant's reply text
	Chat(ctx context.Context, messages []Message) (string, error)

	// Model returns the model identifier requests are sent to
	Model() string

	// Provider returns the host serving the model
	Provider() Provider
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Settings configures a chat client
type Settings struct {
	Provider    Provider
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// String returns the string representation of a Provider
func (p Provider) String() string {
	return string(p)
}
