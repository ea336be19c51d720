package nlu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/acetransit/voicekit/internal/httpc"
)

// DefaultOpenAIModel is the chat model used for classification.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIResolver classifies utterances with the OpenAI chat API. It is
// the usual second link in the chain when Gemini is unavailable.
type OpenAIResolver struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIResolver creates a resolver using the given API key.
func NewOpenAIResolver(apiKey string) (*OpenAIResolver, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai resolver: %w: missing API key", ErrUnavailable)
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = httpc.Client

	return &OpenAIResolver{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultOpenAIModel,
		logger: slog.Default().With("component", "nlu", "provider", "openai"),
	}, nil
}

func (r *OpenAIResolver) Name() string { return "openai" }

// Resolve sends the conversation as chat messages and parses the JSON
// envelope back.
func (r *OpenAIResolver) Resolve(ctx context.Context, req Request) (Result, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, t := range req.ConversationHistory {
		role := openai.ChatMessageRoleUser
		if t.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: buildPrompt(req),
	})

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: 0.2,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		r.logger.Warn("chat completion failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, ErrBadResponse
	}
	return ParseModelJSON(resp.Choices[0].Message.Content)
}

var _ Resolver = (*OpenAIResolver)(nil)
