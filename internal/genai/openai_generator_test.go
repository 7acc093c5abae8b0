package genai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openai/openai-go/v3"
)

func TestAPIStatusCode(t *testing.T) {
	apiErr := &openai.Error{StatusCode: 429}
	wrapped := fmt.Errorf("chat completion failed: %w", apiErr)
	if got := apiStatusCode(wrapped); got != 429 {
		t.Errorf("apiStatusCode() = %d, want 429", got)
	}

	if got := apiStatusCode(errors.New("connection refused")); got != 0 {
		t.Errorf("apiStatusCode() = %d, want 0 for non-API error", got)
	}
}

func TestAPIStatusCode_DrivesClassification(t *testing.T) {
	// Mirrors how Generate wraps API failures: the status code, not the
	// message text, decides retry vs fail.
	unauthorized := WrapError(
		fmt.Errorf("chat completion failed: %w", &openai.Error{StatusCode: 401}),
		ProviderOpenAI,
		apiStatusCode(&openai.Error{StatusCode: 401}),
	)
	if got := ClassifyError(unauthorized); got != ActionFail {
		t.Errorf("ClassifyError(401) = %v, want ActionFail", got)
	}

	rateLimited := WrapError(
		fmt.Errorf("chat completion failed: %w", &openai.Error{StatusCode: 429}),
		ProviderGroq,
		apiStatusCode(&openai.Error{StatusCode: 429}),
	)
	if got := ClassifyError(rateLimited); got != ActionRetry {
		t.Errorf("ClassifyError(429) = %v, want ActionRetry", got)
	}
}
