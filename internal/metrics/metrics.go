// Package metrics defines the Prometheus metrics for the recommender.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Recommendation pipeline metrics
	RecommendRequestsTotal   *prometheus.CounterVec
	RecommendDurationSeconds *prometheus.HistogramVec

	// Classifier metrics
	ClassificationsTotal     *prometheus.CounterVec
	ClassifierFallbacksTotal *prometheus.CounterVec

	// Retrieval and generation metrics
	RetrievalDurationSeconds  prometheus.Histogram
	GenerationDurationSeconds *prometheus.HistogramVec
	ProviderFallbacksTotal    *prometheus.CounterVec

	// Session metrics
	ActiveSessions prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		RecommendRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_rec_recommend_requests_total",
				Help: "Total number of recommendation requests by strategy and status",
			},
			[]string{"strategy", "status"}, // status: success, retrieval_error, generation_error, classify_error
		),

		RecommendDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "course_rec_recommend_duration_seconds",
				Help:    "End-to-end recommendation duration in seconds by strategy",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30}, // LLM calls dominate
			},
			[]string{"strategy"},
		),

		ClassificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_rec_classifications_total",
				Help: "Total number of question classifications by label and source",
			},
			[]string{"label", "source"}, // source: model, rule
		),

		ClassifierFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_rec_classifier_fallbacks_total",
				Help: "Total number of rule fallbacks by reason",
			},
			[]string{"reason"}, // reason: low_confidence, model_unavailable
		),

		RetrievalDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "course_rec_retrieval_duration_seconds",
				Help:    "Hybrid search duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
		),

		GenerationDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "course_rec_generation_duration_seconds",
				Help:    "LLM answer generation duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		ProviderFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "course_rec_provider_fallbacks_total",
				Help: "Total number of LLM provider fallbacks by operation",
			},
			[]string{"operation"}, // operation: generate, predict
		),

		ActiveSessions: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "course_rec_active_sessions",
				Help: "Number of conversation sessions currently held in memory",
			},
		),
	}
}

// RecordClassification increments the classification counter
func (m *Metrics) RecordClassification(label, source string) {
	if m == nil {
		return
	}
	m.ClassificationsTotal.WithLabelValues(label, source).Inc()
}

// RecordClassifierFallback increments the rule-fallback counter
func (m *Metrics) RecordClassifierFallback(reason string) {
	if m == nil {
		return
	}
	m.ClassifierFallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordRecommend records one pipeline run
func (m *Metrics) RecordRecommend(strategy, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RecommendRequestsTotal.WithLabelValues(strategy, status).Inc()
	m.RecommendDurationSeconds.WithLabelValues(strategy).Observe(seconds)
}

// RecordRetrieval observes one hybrid search duration
func (m *Metrics) RecordRetrieval(seconds float64) {
	if m == nil {
		return
	}
	m.RetrievalDurationSeconds.Observe(seconds)
}

// RecordGeneration observes one answer generation duration
func (m *Metrics) RecordGeneration(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.GenerationDurationSeconds.WithLabelValues(provider).Observe(seconds)
}

// RecordProviderFallback increments the provider fallback counter
func (m *Metrics) RecordProviderFallback(operation string) {
	if m == nil {
		return
	}
	m.ProviderFallbacksTotal.WithLabelValues(operation).Inc()
}

// SetActiveSessions updates the active session gauge
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}
