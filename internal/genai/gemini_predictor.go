// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains the Gemini implementation of question-type scoring
// using function calling.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
)

// geminiPredictor scores questions using Gemini function calling.
// It implements the Predictor interface.
type geminiPredictor struct {
	client *genai.Client
	model  string
	tools  []*genai.Tool
}

// newGeminiPredictor creates a Gemini-based predictor.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiPredictor(ctx context.Context, apiKey, model string) (*geminiPredictor, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiClassifierModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiPredictor{
		client: client,
		model:  model,
		tools:  []*genai.Tool{{FunctionDeclarations: buildGeminiClassifierFunctions()}},
	}, nil
}

// buildGeminiClassifierFunctions declares score_question in Gemini format.
func buildGeminiClassifierFunctions() []*genai.FunctionDeclaration {
	properties := make(map[string]*genai.Schema, len(ClassifierParams))
	required := make([]string, 0, len(ClassifierParams))
	for _, p := range ClassifierParams {
		properties[p.Name] = &genai.Schema{
			Type:        genai.TypeNumber,
			Description: p.Description,
		}
		required = append(required, p.Name)
	}

	return []*genai.FunctionDeclaration{{
		Name:        ClassifierFunctionName,
		Description: "Report the probability of each question type",
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   required,
		},
	}}
}

// Predict scores the question and returns a normalized probability
// distribution over the three modeled labels.
func (p *geminiPredictor) Predict(ctx context.Context, question string) (map[classifier.Label]float64, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("predictor is nil")
	}

	config := &genai.GenerateContentConfig{
		Tools:             p.tools,
		SystemInstruction: genai.NewContentFromText(ClassifierSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1), // Low temperature for consistent classification
		MaxOutputTokens:   128,
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAny,
			},
		},
	}

	start := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(question), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "question scoring API call failed",
			"provider", "gemini",
			"model", p.model,
			"question_length", len(question),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("empty response from model")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.FunctionCall == nil {
			continue
		}
		if part.FunctionCall.Name != ClassifierFunctionName {
			return nil, fmt.Errorf("unexpected function: %s", part.FunctionCall.Name)
		}

		args := make(map[string]float64, len(ClassifierParams))
		for _, cp := range ClassifierParams {
			if v, ok := part.FunctionCall.Args[cp.Name].(float64); ok {
				args[cp.Name] = v
			}
		}
		return normalizeScores(args)
	}

	return nil, errors.New("no function call in response")
}

// Provider returns the provider type for this predictor.
func (p *geminiPredictor) Provider() Provider {
	return ProviderGemini
}

// Close releases resources. The genai client is stateless.
func (p *geminiPredictor) Close() error {
	return nil
}
