package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrEmptyResponse is returned when the endpoint replies without any text.
var ErrEmptyResponse = errors.New("empty response")

// MissingCredentialError reports that the API key variable is unset.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s environment variable not set", e.EnvVar)
}

// Completer sends one system/user message pair to a chat model and returns
// the reply text.
type Completer interface {
	Complete(ctx context.Context, model string, prompt Prompt) (string, error)
}

// OpenAIClient is a Completer for OpenAI-compatible chat completion APIs.
type OpenAIClient struct {
	client *openai.Client
	logger *zap.Logger
}

// NewOpenAIClient returns a client for apiKey. An empty baseURL uses the
// OpenAI default.
func NewOpenAIClient(apiKey, baseURL string, logger *zap.Logger) *OpenAIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		logger: logger.Named("llm"),
	}
}

// NewOpenAIClientFromEnv reads the API key from envVar. It returns a
// *MissingCredentialError before any network work when the variable is empty.
func NewOpenAIClientFromEnv(envVar, baseURL string, logger *zap.Logger) (*OpenAIClient, error) {
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, &MissingCredentialError{EnvVar: envVar}
	}
	return NewOpenAIClient(apiKey, baseURL, logger), nil
}

// Complete implements Completer.
func (c *OpenAIClient) Complete(ctx context.Context, model string, prompt Prompt) (string, error) {
	start := time.Now()
	c.logger.Info("sending chat completion",
		zap.String("model", model),
		zap.Int("system_chars", len(prompt.System)),
		zap.Int("user_chars", len(prompt.User)))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	})
	if err != nil {
		c.logger.Error("chat completion failed",
			zap.String("model", model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("chat completion returned no content", zap.String("model", model))
		return "", ErrEmptyResponse
	}

	c.logger.Info("chat completion finished",
		zap.String("model", model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}
