// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "SYL_PORT"
	EnvLogLevel        = "SYL_LOG_LEVEL"
	EnvShutdownTimeout = "SYL_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir = "SYL_DATA_DIR"

	// LLM Providers
	EnvLLMProviders         = "SYL_LLM_PROVIDERS"
	EnvOpenAIAPIKey         = "SYL_OPENAI_API_KEY"
	EnvGroqAPIKey           = "SYL_GROQ_API_KEY"
	EnvGeminiAPIKey         = "SYL_GEMINI_API_KEY"
	EnvOpenAIChatModel      = "SYL_OPENAI_CHAT_MODEL"
	EnvOpenAIClassifyModel  = "SYL_OPENAI_CLASSIFIER_MODEL"
	EnvGroqChatModel        = "SYL_GROQ_CHAT_MODEL"
	EnvGroqClassifyModel    = "SYL_GROQ_CLASSIFIER_MODEL"
	EnvGeminiChatModel      = "SYL_GEMINI_CHAT_MODEL"
	EnvGeminiClassifyModel  = "SYL_GEMINI_CLASSIFIER_MODEL"

	// Classifier
	EnvConfidenceThreshold = "SYL_CONFIDENCE_THRESHOLD"
	EnvRuleOnlyDegraded    = "SYL_RULE_ONLY_DEGRADED"

	// Retrieval
	EnvRetrievalK    = "SYL_RETRIEVAL_K"
	EnvMinSimilarity = "SYL_MIN_SIMILARITY"

	// Sessions
	EnvSessionTTL = "SYL_SESSION_TTL"

	// CORS
	EnvCORSAllowOrigins = "SYL_CORS_ALLOW_ORIGINS"

	// Metrics Auth Feature
	EnvMetricsUsername = "SYL_METRICS_USERNAME"
	EnvMetricsPassword = "SYL_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryEnabled     = "SYL_SENTRY_ENABLED"
	EnvSentryDSN         = "SYL_SENTRY_DSN"
	EnvSentryEnvironment = "SYL_SENTRY_ENVIRONMENT"
	EnvSentryRelease     = "SYL_SENTRY_RELEASE"
	EnvSentrySampleRate  = "SYL_SENTRY_SAMPLE_RATE"
)
