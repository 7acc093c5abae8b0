// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains retry logic with exponential backoff and jitter.
package genai

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"
)

// CalculateBackoff calculates the delay before the next retry attempt.
// Uses AWS-recommended Full Jitter algorithm:
//
//	delay = random(0, min(maxDelay, initialDelay * 2^attempt))
//
// Reference: https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
func CalculateBackoff(attempt int, initial, max time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}

	exp := math.Pow(2, float64(attempt-1))
	delay := time.Duration(float64(initial) * exp)
	if delay > max {
		delay = max
	}
	if delay <= 0 {
		return 0
	}

	// crypto/rand gives a uniform draw without modulo bias.
	maxNs := big.NewInt(int64(delay))
	jitterBig, err := rand.Int(rand.Reader, maxNs)
	if err != nil {
		return delay / 2
	}
	return time.Duration(jitterBig.Int64())
}

// Sleep waits for the specified duration, respecting context cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WithRetry executes fn with retry on transient errors, up to
// cfg.MaxAttempts attempts. Permanent errors abort immediately.
// onRetry, if non-nil, is called before each retry for metrics/logging.
func WithRetry(ctx context.Context, cfg RetryConfig, onRetry func(attempt int, err error), fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		delay := CalculateBackoff(attempt+1, cfg.InitialDelay, cfg.MaxDelay)

		// Skip a backoff the deadline cannot cover.
		if !HasSufficientBudget(ctx, delay) {
			return fmt.Errorf("timeout during retry: %w", lastErr)
		}

		if err := Sleep(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// HasSufficientBudget checks if there's enough time remaining in the
// context deadline for an operation. No deadline means unlimited budget.
func HasSufficientBudget(ctx context.Context, required time.Duration) bool {
	deadline, ok := ctx.Deadline()
	if !ok {
		return true
	}
	return time.Until(deadline) >= required
}
