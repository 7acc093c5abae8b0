package genai

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorAction
	}{
		{"nil", nil, ActionFail},
		{"canceled", context.Canceled, ActionFail},
		{"deadline", context.DeadlineExceeded, ActionRetry},
		{"quota", errors.New("quota exceeded for project"), ActionFallback},
		{"billing", errors.New("billing hard limit reached"), ActionFallback},
		{"rate limit", errors.New("429 too many requests"), ActionRetry},
		{"server error", errors.New("503 service unavailable"), ActionRetry},
		{"overloaded", errors.New("model is overloaded"), ActionRetry},
		{"connection", errors.New("connection reset by peer"), ActionRetry},
		{"bad request", errors.New("400 bad request"), ActionFail},
		{"auth", errors.New("invalid api key"), ActionFail},
		{"forbidden", errors.New("403 forbidden"), ActionFail},
		{"not found", errors.New("404 not found"), ActionFail},
		{"unknown", errors.New("something odd"), ActionRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyError_WrappedStatusCode(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorAction
	}{
		{429, ActionRetry},
		{408, ActionRetry},
		{409, ActionRetry},
		{500, ActionRetry},
		{502, ActionRetry},
		{400, ActionFail},
		{401, ActionFail},
		{404, ActionFail},
		{422, ActionFail},
	}

	for _, tt := range tests {
		err := WrapError(errors.New("api error"), ProviderOpenAI, tt.status)
		if got := ClassifyError(err); got != tt.want {
			t.Errorf("status %d: ClassifyError() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestLLMError_Unwrap(t *testing.T) {
	base := errors.New("base failure")
	wrapped := WrapError(base, ProviderGroq, 500)
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error does not unwrap to base")
	}

	rewrapped := fmt.Errorf("outer: %w", wrapped)
	var llmErr *LLMError
	if !errors.As(rewrapped, &llmErr) {
		t.Fatal("errors.As failed to find LLMError")
	}
	if llmErr.Provider != ProviderGroq {
		t.Errorf("provider = %v, want groq", llmErr.Provider)
	}
}

func TestWrapError_Nil(t *testing.T) {
	if WrapError(nil, ProviderOpenAI, 500) != nil {
		t.Error("WrapError(nil) should return nil")
	}
}
