// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains the OpenAI-compatible implementation of question-type
// scoring using forced function calling.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
)

// openaiPredictor scores questions using an OpenAI-compatible chat API with
// forced function calling. It implements the Predictor interface.
type openaiPredictor struct {
	client   openai.Client
	model    string
	tools    []openai.ChatCompletionToolUnionParam
	provider Provider
}

// newOpenAIPredictor creates a predictor for OpenAI or an OpenAI-compatible
// provider. Returns nil if apiKey is empty (provider disabled).
func newOpenAIPredictor(provider Provider, apiKey, model string) (*openaiPredictor, error) {
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
			model = DefaultOpenAIClassifierModel
		case ProviderGroq:
			model = DefaultGroqClassifierModel
		default:
			return nil, fmt.Errorf("no default classifier model for provider: %s", provider)
		}
	}

	return &openaiPredictor{
		client:   openai.NewClient(opts...),
		model:    model,
		tools:    buildOpenAIClassifierTools(),
		provider: provider,
	}, nil
}

// buildOpenAIClassifierTools declares the score_question tool in OpenAI
// format. All three probability parameters are required.
func buildOpenAIClassifierTools() []openai.ChatCompletionToolUnionParam {
	properties := make(map[string]any, len(ClassifierParams))
	required := make([]string, 0, len(ClassifierParams))
	for _, p := range ClassifierParams {
		properties[p.Name] = map[string]string{
			"type":        "number",
			"description": p.Description,
		}
		required = append(required, p.Name)
	}

	tool := openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        ClassifierFunctionName,
		Description: openai.String("Report the probability of each question type"),
		Parameters: openai.FunctionParameters{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	})
	return []openai.ChatCompletionToolUnionParam{tool}
}

// Predict scores the question and returns a normalized probability
// distribution over the three modeled labels.
func (p *openaiPredictor) Predict(ctx context.Context, question string) (map[classifier.Label]float64, error) {
	if p == nil {
		return nil, errors.New("predictor is nil")
	}

	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(ClassifierSystemPrompt),
			openai.UserMessage(question),
		},
		Tools: p.tools,
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String(string(openai.ChatCompletionToolChoiceOptionAutoRequired)),
		},
		Temperature: openai.Float(0.1), // Low temperature for consistent classification
		MaxTokens:   openai.Int(128),
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "question scoring API call failed",
			"provider", p.provider,
			"model", p.model,
			"question_length", len(question),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, WrapError(fmt.Errorf("chat completion failed: %w", err), p.provider, apiStatusCode(err))
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("empty response from model")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, errors.New("no tool call in response (expected with required mode)")
	}

	tc := choice.Message.ToolCalls[0]
	if tc.Function.Name != ClassifierFunctionName {
		return nil, fmt.Errorf("unexpected function: %s", tc.Function.Name)
	}

	var args map[string]float64
	if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("failed to parse function arguments: %w", err)
	}

	return normalizeScores(args)
}

// Provider returns the provider type for this predictor.
func (p *openaiPredictor) Provider() Provider {
	if p == nil {
		return ""
	}
	return p.provider
}

// Close releases resources. The openai-go client requires no cleanup.
func (p *openaiPredictor) Close() error {
	return nil
}

// normalizeScores converts raw function-call arguments into a probability
// distribution over the modeled labels. Negative values are clamped to 0;
// the result is renormalized so probabilities sum to 1.
func normalizeScores(args map[string]float64) (map[classifier.Label]float64, error) {
	raw := map[classifier.Label]float64{
		classifier.LabelRecommend: args["recommend"],
		classifier.LabelCondition: args["condition"],
		classifier.LabelInfo:      args["info"],
	}

	var sum float64
	for l, v := range raw {
		if v < 0 {
			v = 0
			raw[l] = 0
		}
		sum += v
	}
	if sum <= 0 {
		return nil, errors.New("model returned all-zero scores")
	}

	for l := range raw {
		raw[l] /= sum
	}
	return raw, nil
}
