// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains the unified OpenAI-compatible implementation of answer
// generation. It works with OpenAI directly and with Groq via custom BaseURL.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// generationTemperature keeps answers warm enough for natural phrasing
	// while the prompt instructions keep them grounded.
	generationTemperature = 0.7

	// generationMaxTokens bounds answer length.
	generationMaxTokens = 1024
)

// apiStatusCode extracts the HTTP status from an OpenAI-compatible API
// error, so retry/fallback decisions can classify by code instead of
// matching message text. Returns 0 when the error carries no status.
func apiStatusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// openaiGenerator produces answers using an OpenAI-compatible chat API.
// It implements the Generator interface.
type openaiGenerator struct {
	client   openai.Client
	model    string
	provider Provider
}

// newOpenAIGenerator creates a generator for OpenAI or an OpenAI-compatible
// provider. Returns nil if apiKey is empty (provider disabled).
func newOpenAIGenerator(provider Provider, apiKey, model string) (*openaiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL, ok := ProviderEndpoint[provider]; ok {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	if model == "" {
		switch provider {
		case ProviderOpenAI:
			model = DefaultOpenAIChatModel
		case ProviderGroq:
			model = DefaultGroqChatModel
		default:
			return nil, fmt.Errorf("no default chat model for provider: %s", provider)
		}
	}

	return &openaiGenerator{
		client:   openai.NewClient(opts...),
		model:    model,
		provider: provider,
	}, nil
}

// Generate sends the composed prompt as a single user message and returns
// the model's answer text.
func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil {
		return "", errors.New("generator is nil")
	}

	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(generationTemperature),
		MaxTokens:   openai.Int(generationMaxTokens),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "answer generation API call failed",
			"provider", g.provider,
			"model", g.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", WrapError(fmt.Errorf("chat completion failed: %w", err), g.provider, apiStatusCode(err))
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("model returned empty answer")
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "answer generation completed",
			"provider", g.provider,
			"model", g.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds())
	}

	return answer, nil
}

// Provider returns the provider type for this generator.
func (g *openaiGenerator) Provider() Provider {
	if g == nil {
		return ""
	}
	return g.provider
}

// Close releases resources. The openai-go client requires no cleanup.
func (g *openaiGenerator) Close() error {
	return nil
}
