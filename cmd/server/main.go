// Package main provides the course recommendation server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yeonho-dev/course-recommender-go/internal/buildinfo"
	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
	"github.com/yeonho-dev/course-recommender-go/internal/config"
	"github.com/yeonho-dev/course-recommender-go/internal/genai"
	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/metrics"
	"github.com/yeonho-dev/course-recommender-go/internal/rag"
	"github.com/yeonho-dev/course-recommender-go/internal/recommender"
	"github.com/yeonho-dev/course-recommender-go/internal/sentry"
	"github.com/yeonho-dev/course-recommender-go/internal/session"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.WithFields(map[string]any{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	}).Info("Starting Course Recommender Server")

	// Initialize Sentry error tracking (optional)
	if cfg.SentryEnabled {
		release := cfg.SentryRelease
		if release == "" {
			release = buildinfo.Version
		}
		if err := sentry.Initialize(sentry.Config{
			DSN:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     release,
			SampleRate:  cfg.SentrySampleRate,
		}); err != nil {
			log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
		} else {
			log.WithField("environment", cfg.SentryEnvironment).Info("Sentry initialized")
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Connect to the syllabus store
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()

	// Register Go and process collectors
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Load syllabus records for the retrieval indexes
	syllabi, err := db.GetAllSyllabi(context.Background())
	if err != nil {
		log.WithError(err).Fatal("Failed to load syllabi from database")
	}
	if len(syllabi) == 0 {
		log.Warn("Syllabus store is empty, answers will have no retrieval context (run cmd/import first)")
	} else {
		log.WithField("syllabi_count", len(syllabi)).Info("Syllabi loaded")
	}

	// Create vector database for semantic search (optional - requires OpenAI API key)
	vectorDB, err := rag.NewVectorDB(cfg.VectorDir(), cfg.OpenAIAPIKey, float32(cfg.MinSimilarity), log)
	if err != nil {
		log.WithError(err).Warn("Failed to create vector database, semantic search disabled")
		vectorDB = nil
	}
	if vectorDB == nil {
		log.Info("OpenAI API key not configured, semantic search disabled")
	}

	// Create BM25 index for keyword search
	bm25Index := rag.NewBM25Index(log)

	// Build both indexes in parallel
	var g errgroup.Group
	g.Go(func() error {
		if err := bm25Index.Initialize(syllabi); err != nil {
			return fmt.Errorf("bm25 index: %w", err)
		}
		return nil
	})
	if vectorDB != nil {
		g.Go(func() error {
			if err := vectorDB.Initialize(context.Background(), syllabi); err != nil {
				return fmt.Errorf("vector store: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("Failed to build retrieval indexes")
	}
	log.WithFields(map[string]any{
		"bm25_docs":   bm25Index.Count(),
		"vector_docs": vectorDB.Count(),
	}).Info("Retrieval indexes built")

	// Create hybrid searcher (degrades to single-source when one side is off)
	hybridSearcher := rag.NewHybridSearcher(vectorDB, bm25Index, log)

	// Build the LLM provider chain
	llmCfg := &genai.Config{
		Providers:  toProviders(cfg.Providers),
		OnFallback: m.RecordProviderFallback,
		OpenAI: genai.ProviderConfig{
			APIKey:          cfg.OpenAIAPIKey,
			ChatModel:       cfg.OpenAIChatModel,
			ClassifierModel: cfg.OpenAIClassifierModel,
		},
		Groq: genai.ProviderConfig{
			APIKey:          cfg.GroqAPIKey,
			ChatModel:       cfg.GroqChatModel,
			ClassifierModel: cfg.GroqClassifierModel,
		},
		Gemini: genai.ProviderConfig{
			APIKey:          cfg.GeminiAPIKey,
			ChatModel:       cfg.GeminiChatModel,
			ClassifierModel: cfg.GeminiClassifierModel,
		},
	}

	generator, err := genai.NewGenerator(context.Background(), llmCfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to create answer generator")
	}
	defer func() { _ = generator.Close() }()
	log.WithField("provider", string(generator.Provider())).Info("Answer generator created")

	var predictor classifier.Predictor
	modelPredictor, err := genai.NewPredictor(context.Background(), llmCfg)
	if err != nil {
		if !cfg.RuleOnlyDegraded {
			log.WithError(err).Fatal("Failed to create question classifier model")
		}
		log.WithError(err).Warn("Question classifier model unavailable, running rule-only")
	} else {
		predictor = modelPredictor
		defer func() { _ = modelPredictor.Close() }()
	}

	// Create hybrid classifier with rule fallback
	classifierOpts := []classifier.Option{
		classifier.WithConfidenceThreshold(cfg.ConfidenceThreshold),
	}
	if cfg.RuleOnlyDegraded {
		classifierOpts = append(classifierOpts, classifier.WithRuleOnlyDegradation())
	}
	hybridClassifier := classifier.NewHybrid(predictor, log, classifierOpts...)
	log.WithField("threshold", cfg.ConfidenceThreshold).Info("Hybrid classifier created")

	// Create conversation session store
	sessions := session.NewStore(cfg.SessionTTL)
	defer sessions.Close()
	log.WithField("ttl", cfg.SessionTTL).Info("Session store created")

	// Assemble the recommendation pipeline
	engine := recommender.NewEngine(hybridSearcher, generator, log,
		recommender.WithEngineMetrics(m))
	service := recommender.NewService(hybridClassifier, engine, sessions, m, log,
		recommender.WithRetrievalK(cfg.RetrievalK))
	log.Info("Recommendation service created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(corsMiddleware(cfg.CORSAllowOrigins))
	router.Use(loggingMiddleware(log))
	if sentry.IsEnabled() {
		router.Use(sentryMiddleware())
	}

	// Setup routes
	setupRoutes(router, service, db, hybridSearcher, sessions, registry, cfg)

	// Create HTTP server; generous write timeout because answers wait on the LLM
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Close vector store
	if err := vectorDB.Close(); err != nil {
		log.WithError(err).Error("Failed to close vector store")
	}

	log.Info("Server stopped")
}

// toProviders maps configured provider names onto the genai enum.
// Unknown names are rejected by config validation before this runs.
func toProviders(names []string) []genai.Provider {
	providers := make([]genai.Provider, 0, len(names))
	for _, name := range names {
		providers = append(providers, genai.Provider(name))
	}
	return providers
}
