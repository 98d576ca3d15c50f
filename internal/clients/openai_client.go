package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
)

var ErrEmptyCompletion = errors.New("openai returned an empty completion")

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

// NewOpenAIClient builds a chat client. baseURL may be empty to use the
// public API.
func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("[OpenAIClient] missing OPENAI_API_KEY")
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{
		Timeout: openAIRequestTimeout,
	}
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}

	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))
	return &OpenAIClient{
		Client: openai.NewClientWithConfig(config),
		Model:  model,
	}, nil
}

// Complete sends one system + user exchange and returns the reply with any
// markdown fence removed.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	slog.Debug("[OpenAIClient] Completion received",
		slog.String("model", c.Model),
		slog.Duration("elapsed", time.Since(start)))
	return CleanOpenAIResponse(resp.Choices[0].Message.Content), nil
}

func CleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	// Standardize quotes in case OpenAI outputs them incorrectly
	response = strings.ReplaceAll(response, "\u201C", `"`) // Left curly quote
	response = strings.ReplaceAll(response, "\u201D", `"`) // Right curly quote

	return strings.TrimSpace(response)
}
