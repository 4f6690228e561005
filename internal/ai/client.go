// Package ai wraps the OpenAI chat completion API behind a one-method
// interface so callers and tests never touch the SDK directly.
package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/petrikoro/liftlog/internal/errors"
)

// Completer produces a single chat completion for a prompt. Implementations
// must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int64) (string, error)
}

// Client is the OpenAI-backed Completer.
type Client struct {
	client openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

// NewClient builds a Client. model may be empty, in which case a small
// default model is used; every caller in this codebase sends short prompts
// with tight token caps.
func NewClient(apiKey string, model string, logger *slog.Logger) *Client {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: logger,
	}
}

// Complete sends prompt as a single user message and returns the trimmed
// completion text.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion", slog.String("model", string(c.model)))
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	c.logger.LogAttrs(ctx, slog.LevelDebug, "chat completion",
		slog.Int("prompt_len", len(prompt)),
		slog.Int("reply_len", len(reply)))
	return reply, nil
}
