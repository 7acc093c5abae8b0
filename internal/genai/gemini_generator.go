// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains the Gemini implementation of answer generation.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiGenerator produces answers using the official Gemini SDK.
// It implements the Generator interface.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// newGeminiGenerator creates a Gemini-based generator.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiChatModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{client: client, model: model}, nil
}

// Generate sends the composed prompt and returns the model's answer text.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("generator is nil")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](generationTemperature),
		MaxOutputTokens: generationMaxTokens,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "answer generation API call failed",
			"provider", "gemini",
			"model", g.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			answer.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(answer.String())
	if result == "" {
		return "", errors.New("model returned empty answer")
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "answer generation completed",
			"provider", "gemini",
			"model", g.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	return result, nil
}

// Provider returns the provider type for this generator.
func (g *geminiGenerator) Provider() Provider {
	return ProviderGemini
}

// Close releases resources. The genai client is stateless.
func (g *geminiGenerator) Close() error {
	return nil
}
