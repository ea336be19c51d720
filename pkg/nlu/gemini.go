package nlu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel balances latency and quality for short
// classification prompts.
const DefaultGeminiModel = "models/gemini-2.0-flash"

// GeminiResolver classifies utterances with Google's Gemini API.
type GeminiResolver struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// NewGeminiResolver creates a resolver using the given API key.
func NewGeminiResolver(ctx context.Context, apiKey string) (*GeminiResolver, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini resolver: %w: missing API key", ErrUnavailable)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini resolver: %w", err)
	}

	model := client.GenerativeModel(DefaultGeminiModel)
	model.ResponseMIMEType = "application/json"

	return &GeminiResolver{
		client: client,
		model:  model,
		logger: slog.Default().With("component", "nlu", "provider", "gemini"),
	}, nil
}

func (r *GeminiResolver) Name() string { return "gemini" }

// Resolve sends the rendered prompt and parses the JSON envelope back.
func (r *GeminiResolver) Resolve(ctx context.Context, req Request) (Result, error) {
	resp, err := r.model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		r.logger.Warn("generate failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Result{}, ErrBadResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return ParseModelJSON(sb.String())
}

// Close releases the underlying API client.
func (r *GeminiResolver) Close() error {
	return r.client.Close()
}

var _ Resolver = (*GeminiResolver)(nil)
