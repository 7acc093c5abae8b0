// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains the fallback wrappers for cross-provider failover.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
)

// FallbackGenerator tries an ordered chain of generators. Each provider is
// retried with backoff on transient errors before moving to the next one.
// Permanent errors abort the chain immediately.
type FallbackGenerator struct {
	chain       []Generator
	retryConfig RetryConfig
	onFallback  func(operation string)
}

// NewFallbackGenerator creates a fallback-enabled generator over the chain.
func NewFallbackGenerator(chain []Generator, cfg RetryConfig) *FallbackGenerator {
	return &FallbackGenerator{chain: chain, retryConfig: cfg}
}

// Generate walks the provider chain until one produces an answer.
func (f *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if f == nil || len(f.chain) == 0 {
		return "", errors.New("no generator configured")
	}

	var lastErr error
	for i, gen := range f.chain {
		start := time.Now()
		var answer string
		err := WithRetry(ctx, f.retryConfig, func(attempt int, retryErr error) {
			slog.DebugContext(ctx, "retrying answer generation",
				"provider", gen.Provider(),
				"attempt", attempt,
				"error", retryErr)
		}, func() error {
			var genErr error
			answer, genErr = gen.Generate(ctx, prompt)
			return genErr
		})
		if err == nil {
			return answer, nil
		}
		lastErr = err

		action := ClassifyError(err)
		if action == ActionFail {
			return "", err
		}
		if i < len(f.chain)-1 {
			slog.WarnContext(ctx, "generator provider failed, falling back",
				"from", gen.Provider(),
				"to", f.chain[i+1].Provider(),
				"duration", time.Since(start),
				"error", err)
			if f.onFallback != nil {
				f.onFallback("generate")
			}
		}
	}

	return "", fmt.Errorf("all providers failed: %w", lastErr)
}

// Provider returns the primary provider of the chain.
func (f *FallbackGenerator) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every generator in the chain.
func (f *FallbackGenerator) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for _, gen := range f.chain {
		if err := gen.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FallbackPredictor tries an ordered chain of predictors with the same
// retry-then-fallback discipline as FallbackGenerator.
type FallbackPredictor struct {
	chain       []Predictor
	retryConfig RetryConfig
	onFallback  func(operation string)
}

// NewFallbackPredictor creates a fallback-enabled predictor over the chain.
func NewFallbackPredictor(chain []Predictor, cfg RetryConfig) *FallbackPredictor {
	return &FallbackPredictor{chain: chain, retryConfig: cfg}
}

// Predict walks the provider chain until one produces a distribution.
func (f *FallbackPredictor) Predict(ctx context.Context, question string) (map[classifier.Label]float64, error) {
	if f == nil || len(f.chain) == 0 {
		return nil, errors.New("no predictor configured")
	}

	var lastErr error
	for i, pred := range f.chain {
		start := time.Now()
		var probs map[classifier.Label]float64
		err := WithRetry(ctx, f.retryConfig, func(attempt int, retryErr error) {
			slog.DebugContext(ctx, "retrying question scoring",
				"provider", pred.Provider(),
				"attempt", attempt,
				"error", retryErr)
		}, func() error {
			var predErr error
			probs, predErr = pred.Predict(ctx, question)
			return predErr
		})
		if err == nil {
			return probs, nil
		}
		lastErr = err

		action := ClassifyError(err)
		if action == ActionFail {
			return nil, err
		}
		if i < len(f.chain)-1 {
			slog.WarnContext(ctx, "predictor provider failed, falling back",
				"from", pred.Provider(),
				"to", f.chain[i+1].Provider(),
				"duration", time.Since(start),
				"error", err)
			if f.onFallback != nil {
				f.onFallback("predict")
			}
		}
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

// Provider returns the primary provider of the chain.
func (f *FallbackPredictor) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every predictor in the chain.
func (f *FallbackPredictor) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for _, pred := range f.chain {
		if err := pred.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
