package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// defaultChatTimeout applies when Settings.Timeout is unset
const defaultChatTimeout = 120 * time.Second

// ChatClient talks to an OpenAI-compatible /chat/completions endpoint
type ChatClient struct {
	hc          *http.Client
	url         string
	apiKey      string
	model       string
	provider    Provider
	temperature float64
	maxTokens   int
}

var _ Brain = (*ChatClient)(nil)

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewChatClient creates a client from resolved settings
func NewChatClient(s Settings) *ChatClient {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}

	return &ChatClient{
		hc:          &http.Client{Timeout: timeout},
		url:         strings.TrimRight(s.BaseURL, "/") + "/chat/completions",
		apiKey:      s.APIKey,
		model:       s.Model,
		provider:    s.Provider,
		temperature: s.Temperature,
		maxTokens:   s.MaxTokens,
	}
}

// Model returns the model identifier
func (c *ChatClient) Model() string {
	return c.model
}

// Provider returns the model host
func (c *ChatClient) Provider() Provider {
	return c.provider
}

// Chat sends one completion request and returns the first choice's content
func (c *ChatClient) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", errors.LLMError("failed to encode chat request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", errors.LLMError("failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.LLMError(fmt.Sprintf("%s request failed", c.provider), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		// a little of the body helps locate the problem
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", errors.LLMError(
			fmt.Sprintf("%s upstream %d: %s", c.provider, resp.StatusCode, strings.TrimSpace(string(slurp))), nil).
			WithContext("status", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.LLMError("failed to decode chat response", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.LLMError("chat response has no choices", nil)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
