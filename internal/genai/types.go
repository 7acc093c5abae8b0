// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains shared types, interfaces, and configuration for the
// question classification and answer generation collaborators with
// multi-provider fallback support.
//
// Architecture:
// - Gemini: Uses google.golang.org/genai (official SDK)
// - OpenAI/Groq: Uses github.com/openai/openai-go/v3 (Groq via custom BaseURL)
//
// Fallback Strategy:
// 1. Model Retry: Same model retried with exponential backoff
// 2. Provider Chain: Next provider in the configured provider list
package genai

import (
	"context"
	"time"

	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderOpenAI represents the OpenAI API.
	ProviderOpenAI Provider = "openai"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers
// that need one. OpenAI itself uses the SDK default; Gemini uses its own SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq: "https://api.groq.com/openai/v1/",
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Generator is the text-generation collaborator. It is stateless across
// calls: conversation context must be embedded in the prompt by the caller.
type Generator interface {
	// Generate produces an answer for the fully composed prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// Provider returns the provider type for logs and metrics.
	Provider() Provider
	// Close releases any resources held by the generator.
	Close() error
}

// Predictor scores a question against the three modeled question types.
// It satisfies classifier.Predictor and adds lifecycle/identity methods.
type Predictor interface {
	// Predict returns a probability distribution over
	// {recommend, condition, info} summing to 1.
	Predict(ctx context.Context, question string) (map[classifier.Label]float64, error)
	// Provider returns the provider type for logs and metrics.
	Provider() Provider
	// Close releases any resources held by the predictor.
	Close() error
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	// APIKey is the API key for the provider.
	APIKey string

	// ChatModel is the model used for answer generation.
	ChatModel string

	// ClassifierModel is the model used for question-type scoring.
	ClassifierModel string
}

// Config holds configuration for all LLM providers.
type Config struct {
	// Providers is the ordered list of providers to try.
	// Fallback happens in order; default: ["openai", "groq", "gemini"]
	// filtered to those with API keys.
	Providers []Provider

	// OpenAI configuration.
	OpenAI ProviderConfig

	// Groq configuration (OpenAI-compatible).
	Groq ProviderConfig

	// Gemini configuration.
	Gemini ProviderConfig

	// Retry controls per-provider retry behavior.
	Retry RetryConfig

	// OnFallback, when set, is called with the operation name
	// ("generate" or "predict") each time the chain moves past a
	// failed provider.
	OnFallback func(operation string)
}

// Default model configurations.
const (
	DefaultOpenAIChatModel       = "gpt-4o-mini"
	DefaultOpenAIClassifierModel = "gpt-4o-mini"
	DefaultGroqChatModel         = "llama-3.3-70b-versatile"
	DefaultGroqClassifierModel   = "llama-3.1-8b-instant"
	DefaultGeminiChatModel       = "gemini-2.5-flash"
	DefaultGeminiClassifierModel = "gemini-2.5-flash-lite"
)

// DefaultProviders is the default provider order for fallback.
var DefaultProviders = []Provider{ProviderOpenAI, ProviderGroq, ProviderGemini}

// Retry configuration defaults.
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the standard retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}

// HasAnyProvider returns true if at least one provider is configured.
func (c *Config) HasAnyProvider() bool {
	return c.OpenAI.APIKey != "" || c.Groq.APIKey != "" || c.Gemini.APIKey != ""
}

// HasProvider returns true if the specified provider has an API key.
func (c *Config) HasProvider(p Provider) bool {
	switch p {
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderGroq:
		return c.Groq.APIKey != ""
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	default:
		return false
	}
}

// GetProviderConfig returns the configuration for a specific provider.
func (c *Config) GetProviderConfig(p Provider) *ProviderConfig {
	switch p {
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGroq:
		return &c.Groq
	case ProviderGemini:
		return &c.Gemini
	default:
		return nil
	}
}

// ConfiguredProviders returns the providers with API keys, in the order
// specified by c.Providers.
func (c *Config) ConfiguredProviders() []Provider {
	order := c.Providers
	if len(order) == 0 {
		order = DefaultProviders
	}
	result := make([]Provider, 0, len(order))
	for _, p := range order {
		if c.HasProvider(p) {
			result = append(result, p)
		}
	}
	return result
}
