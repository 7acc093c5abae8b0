// Package main provides the course recommendation server entry point.
package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
	"github.com/yeonho-dev/course-recommender-go/internal/config"
	"github.com/yeonho-dev/course-recommender-go/internal/rag"
	"github.com/yeonho-dev/course-recommender-go/internal/recommender"
	"github.com/yeonho-dev/course-recommender-go/internal/sentry"
	"github.com/yeonho-dev/course-recommender-go/internal/session"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
)

// recommendRequest is the /api/recommend request body.
// The session ID may come from the body or the X-Session-ID header;
// the header wins when both are set.
type recommendRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// setupRoutes configures all HTTP routes
func setupRoutes(
	router *gin.Engine,
	service *recommender.Service,
	db *storage.DB,
	searcher *rag.HybridSearcher,
	sessions *session.Store,
	registry *prometheus.Registry,
	cfg *config.Config,
) {
	// Root endpoint - redirect to GitHub
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/yeonho-dev/course-recommender-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Health check endpoints
	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - checks if the application is ready to serve traffic
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		syllabusCount, _ := db.CountSyllabi(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"retrieval": gin.H{
				"bm25":   searcher.BM25Index().IsEnabled(),
				"vector": searcher.VectorDB().IsEnabled(),
			},
			"syllabi":  syllabusCount,
			"sessions": sessions.Len(),
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Recommendation endpoint
	router.POST("/api/recommend", recommendHandler(service))

	// Prometheus metrics endpoint (Basic Auth when a password is configured)
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

// recommendHandler answers one question within a conversation session.
// Failures stay opaque to the caller; the detail is logged server-side.
func recommendHandler(service *recommender.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		req.Question = strings.TrimSpace(req.Question)
		if req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}

		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID = req.SessionID
		}

		resp, err := service.Recommend(c.Request.Context(), sessionID, req.Question)
		if err != nil {
			_ = c.Error(err)
			sentry.CaptureExceptionWithContext(c.Request.Context(), err)
			if errors.Is(err, classifier.ErrModelUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model backend unavailable"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question"})
			return
		}

		c.Header("X-Session-ID", resp.SessionID)
		c.JSON(http.StatusOK, resp)
	}
}
