package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	if m.RecommendRequestsTotal == nil {
		t.Error("RecommendRequestsTotal is nil")
	}
	if m.RecommendDurationSeconds == nil {
		t.Error("RecommendDurationSeconds is nil")
	}
	if m.ClassificationsTotal == nil {
		t.Error("ClassificationsTotal is nil")
	}
	if m.ClassifierFallbacksTotal == nil {
		t.Error("ClassifierFallbacksTotal is nil")
	}
	if m.RetrievalDurationSeconds == nil {
		t.Error("RetrievalDurationSeconds is nil")
	}
	if m.GenerationDurationSeconds == nil {
		t.Error("GenerationDurationSeconds is nil")
	}
	if m.ProviderFallbacksTotal == nil {
		t.Error("ProviderFallbacksTotal is nil")
	}
	if m.ActiveSessions == nil {
		t.Error("ActiveSessions is nil")
	}
}

func TestRecordHelpers(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordClassification("recommend", "model")
	m.RecordClassification("info", "rule")
	m.RecordClassifierFallback("low_confidence")
	m.RecordClassifierFallback("model_unavailable")
	m.RecordRecommend("recommend", "success", 1.2)
	m.RecordRecommend("info", "generation_error", 0.4)
	m.RecordRetrieval(0.02)
	m.RecordGeneration("openai", 2.5)
	m.RecordProviderFallback("generate")
	m.SetActiveSessions(3)
}

func TestRecordHelpers_NilReceiver(t *testing.T) {
	var m *Metrics

	// Nil metrics must be safe to call (metrics are optional)
	m.RecordClassification("recommend", "model")
	m.RecordClassifierFallback("low_confidence")
	m.RecordRecommend("recommend", "success", 1.0)
	m.RecordRetrieval(0.01)
	m.RecordGeneration("openai", 1.0)
	m.RecordProviderFallback("predict")
	m.SetActiveSessions(0)
}

func TestMetricsRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordClassification("recommend", "model")
	m.RecordRecommend("recommend", "success", 1.0)
	m.SetActiveSessions(1)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(metricFamilies) == 0 {
		t.Fatal("No metrics were gathered")
	}

	expectedMetrics := map[string]bool{
		"course_rec_recommend_requests_total":   false,
		"course_rec_recommend_duration_seconds": false,
		"course_rec_classifications_total":      false,
		"course_rec_active_sessions":            false,
	}

	for _, mf := range metricFamilies {
		if _, ok := expectedMetrics[mf.GetName()]; ok {
			expectedMetrics[mf.GetName()] = true
		}
	}

	for name, found := range expectedMetrics {
		if !found {
			t.Errorf("Expected metric %q not found", name)
		}
	}
}
