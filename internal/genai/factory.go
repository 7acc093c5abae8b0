// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains factories assembling the provider fallback chains.
package genai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoProvider is returned when no provider has an API key configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// NewGenerator builds the answer-generation chain from the configured
// providers, in configured order.
func NewGenerator(ctx context.Context, cfg *Config) (Generator, error) {
	providers := cfg.ConfiguredProviders()
	if len(providers) == 0 {
		return nil, ErrNoProvider
	}

	chain := make([]Generator, 0, len(providers))
	for _, p := range providers {
		pc := cfg.GetProviderConfig(p)
		gen, err := newProviderGenerator(ctx, p, pc)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", p, err)
		}
		if gen != nil {
			chain = append(chain, gen)
		}
	}
	if len(chain) == 0 {
		return nil, ErrNoProvider
	}

	fg := NewFallbackGenerator(chain, retryOrDefault(cfg.Retry))
	fg.onFallback = cfg.OnFallback
	return fg, nil
}

// NewPredictor builds the question-scoring chain from the configured
// providers, in configured order.
func NewPredictor(ctx context.Context, cfg *Config) (Predictor, error) {
	providers := cfg.ConfiguredProviders()
	if len(providers) == 0 {
		return nil, ErrNoProvider
	}

	chain := make([]Predictor, 0, len(providers))
	for _, p := range providers {
		pc := cfg.GetProviderConfig(p)
		pred, err := newProviderPredictor(ctx, p, pc)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", p, err)
		}
		if pred != nil {
			chain = append(chain, pred)
		}
	}
	if len(chain) == 0 {
		return nil, ErrNoProvider
	}

	fp := NewFallbackPredictor(chain, retryOrDefault(cfg.Retry))
	fp.onFallback = cfg.OnFallback
	return fp, nil
}

func newProviderGenerator(ctx context.Context, p Provider, pc *ProviderConfig) (Generator, error) {
	switch p {
	case ProviderOpenAI, ProviderGroq:
		g, err := newOpenAIGenerator(p, pc.APIKey, pc.ChatModel)
		if err != nil || g == nil {
			return nil, err
		}
		return g, nil
	case ProviderGemini:
		g, err := newGeminiGenerator(ctx, pc.APIKey, pc.ChatModel)
		if err != nil || g == nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", p)
	}
}

func newProviderPredictor(ctx context.Context, p Provider, pc *ProviderConfig) (Predictor, error) {
	switch p {
	case ProviderOpenAI, ProviderGroq:
		pr, err := newOpenAIPredictor(p, pc.APIKey, pc.ClassifierModel)
		if err != nil || pr == nil {
			return nil, err
		}
		return pr, nil
	case ProviderGemini:
		pr, err := newGeminiPredictor(ctx, pc.APIKey, pc.ClassifierModel)
		if err != nil || pr == nil {
			return nil, err
		}
		return pr, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", p)
	}
}

func retryOrDefault(cfg RetryConfig) RetryConfig {
	if cfg.MaxAttempts <= 0 {
		return DefaultRetryConfig()
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialRetryDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxRetryDelay
	}
	return cfg
}
