// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the LLM provider chain, retrieval, and session handling.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Data directory for the SQLite store and the vector index

	// LLM Provider Configuration
	Providers    []string // Ordered provider chain: "openai", "groq", "gemini"
	OpenAIAPIKey string
	GroqAPIKey   string
	GeminiAPIKey string

	// LLM Model Configuration (optional, defaults apply if empty)
	OpenAIChatModel       string
	OpenAIClassifierModel string
	GroqChatModel         string
	GroqClassifierModel   string
	GeminiChatModel       string
	GeminiClassifierModel string

	// Classifier Configuration
	ConfidenceThreshold float64 // Minimum model confidence before rule fallback (default: 0.6)
	RuleOnlyDegraded    bool    // Classify rule-only when the model backend is down (default: false)

	// Retrieval Configuration
	RetrievalK    int     // Documents retrieved per question (default: 5)
	MinSimilarity float64 // Vector similarity floor, 0 disables (default: 0)

	// Session Configuration
	SessionTTL time.Duration // Idle lifetime of a conversation session (default: 30m)

	// CORS Configuration
	CORSAllowOrigins []string // Allowed origins for /api endpoints (default: all)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry Configuration
	SentryEnabled     bool
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64
}

// ValidationMode selects which requirements Validate enforces.
type ValidationMode int

const (
	// ServerMode requires everything the serving path needs, including
	// at least one LLM API key.
	ServerMode ValidationMode = iota
	// ImportMode covers the offline import binary, which only touches
	// the store and optionally the embedding API.
	ImportMode
)

// Load reads configuration from environment variables and validates it
// for the serving path.
func Load() (*Config, error) {
	return LoadForMode(ServerMode)
}

// LoadForMode reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func LoadForMode(mode ValidationMode) (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Server Configuration
		Port:            getEnv(EnvPort, "8000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		// Data Configuration
		DataDir: getEnv(EnvDataDir, getDefaultDataDir()),

		// LLM Provider Configuration
		Providers:    getListEnv(EnvLLMProviders, []string{"openai", "groq", "gemini"}),
		OpenAIAPIKey: getEnv(EnvOpenAIAPIKey, ""),
		GroqAPIKey:   getEnv(EnvGroqAPIKey, ""),
		GeminiAPIKey: getEnv(EnvGeminiAPIKey, ""),

		// LLM Model Configuration (empty = use defaults from genai package)
		OpenAIChatModel:       getEnv(EnvOpenAIChatModel, ""),
		OpenAIClassifierModel: getEnv(EnvOpenAIClassifyModel, ""),
		GroqChatModel:         getEnv(EnvGroqChatModel, ""),
		GroqClassifierModel:   getEnv(EnvGroqClassifyModel, ""),
		GeminiChatModel:       getEnv(EnvGeminiChatModel, ""),
		GeminiClassifierModel: getEnv(EnvGeminiClassifyModel, ""),

		// Classifier Configuration
		ConfidenceThreshold: getFloatEnv(EnvConfidenceThreshold, 0.6),
		RuleOnlyDegraded:    getBoolEnv(EnvRuleOnlyDegraded, false),

		// Retrieval Configuration
		RetrievalK:    getIntEnv(EnvRetrievalK, 5),
		MinSimilarity: getFloatEnv(EnvMinSimilarity, 0),

		// Session Configuration
		SessionTTL: getDurationEnv(EnvSessionTTL, 30*time.Minute),

		// CORS Configuration
		CORSAllowOrigins: getListEnv(EnvCORSAllowOrigins, []string{"*"}),

		// Metrics Authentication
		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		// Sentry Configuration
		SentryEnabled:     getBoolEnv(EnvSentryEnabled, false),
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),
	}

	// Validate configuration
	if err := cfg.ValidateForMode(mode); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against the serving requirements.
func (c *Config) Validate() error {
	return c.ValidateForMode(ServerMode)
}

// ValidateForMode checks if required configuration values are set
func (c *Config) ValidateForMode(mode ValidationMode) error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if mode == ServerMode && !c.HasLLMProvider() {
		errs = append(errs, errors.New("at least one LLM API key is required ("+
			EnvOpenAIAPIKey+", "+EnvGroqAPIKey+" or "+EnvGeminiAPIKey+")"))
	}
	for _, p := range c.Providers {
		switch p {
		case "openai", "groq", "gemini":
		default:
			errs = append(errs, fmt.Errorf("unknown provider %q in %s", p, EnvLLMProviders))
		}
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", EnvConfidenceThreshold, c.ConfidenceThreshold))
	}
	if c.RetrievalK <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvRetrievalK, c.RetrievalK))
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", EnvMinSimilarity, c.MinSimilarity))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSessionTTL, c.SessionTTL))
	}
	if c.SentryEnabled && c.SentryDSN == "" {
		errs = append(errs, errors.New(EnvSentryDSN+" is required when sentry is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getListEnv retrieves a comma-separated environment variable with fallback
// to default value. Empty items are skipped.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "syllabi.db")
}

// VectorDir returns the directory used by the persistent vector index.
func (c *Config) VectorDir() string {
	return filepath.Join(c.DataDir, "chromem")
}

// HasLLMProvider returns true if at least one LLM provider is configured.
func (c *Config) HasLLMProvider() bool {
	return c.OpenAIAPIKey != "" || c.GroqAPIKey != "" || c.GeminiAPIKey != ""
}
