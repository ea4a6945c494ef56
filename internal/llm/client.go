// Package llm provides the chat-completion client boundary and the LLM-backed
// topic extractor with its heuristic fallback chain.
package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperjump/debatable/internal/errs"
)

// CompletionRequest is a role-structured prompt with generation bounds.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client produces a single text completion for a prompt. Implementations
// must honor ctx cancellation.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIClient talks to an OpenAI-compatible chat completion API. With a
// custom base URL it also serves as the Perplexity transport.
type OpenAIClient struct {
	api          *openai.Client
	defaultModel string
	timeout      time.Duration
}

// NewOpenAIClient returns a client for api.openai.com.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	return newClient(openai.DefaultConfig(apiKey), model, timeout)
}

// NewCompatibleClient returns a client for any OpenAI-compatible endpoint
// (e.g. Perplexity).
func NewCompatibleClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return newClient(cfg, model, timeout)
}

func newClient(cfg openai.ClientConfig, model string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIClient{
		api:          openai.NewClientWithConfig(cfg),
		defaultModel: model,
		timeout:      timeout,
	}
}

// Complete sends the prompt and returns the completion text. Timeouts and
// transport failures are classified as transient; an empty choice list is a
// malformed response.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem, Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: req.User,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", errs.Transientf(err, "completion request timed out after %s", c.timeout)
		}
		return "", errs.Transientf(err, "completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errs.Malformedf(nil, "completion response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// MockClient returns a canned response without any network access. Used when
// the mocks flag is set and in tests.
type MockClient struct {
	Response string
	Err      error
	// Calls counts Complete invocations; useful for asserting that a code
	// path made no LLM call.
	Calls int
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, _ CompletionRequest) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
