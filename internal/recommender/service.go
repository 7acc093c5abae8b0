package recommender

import (
	"context"
	"errors"
	"time"

	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/metrics"
	"github.com/yeonho-dev/course-recommender-go/internal/session"
)

// Classifier decides which strategy a question should take.
// Implemented by classifier.Hybrid.
type Classifier interface {
	Classify(ctx context.Context, question string) (classifier.Result, error)
}

// Response is the outcome of one recommendation request.
type Response struct {
	SessionID string           `json:"session_id"`
	Answer    string           `json:"answer"`
	Label     string           `json:"label"`
	Source    string           `json:"source"`
	Sources   []Recommendation `json:"sources"`
}

// Option configures a Service.
type Option func(*Service)

// WithRetrievalK overrides the per-strategy retrieval depth.
func WithRetrievalK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.retrievalK = k
		}
	}
}

// Service wires the full pipeline behind one entry point.
type Service struct {
	classifier Classifier
	engine     *Engine
	sessions   *session.Store
	metrics    *metrics.Metrics
	logger     *logger.Logger
	retrievalK int
}

// NewService creates the recommendation service. metrics may be nil.
func NewService(c Classifier, engine *Engine, sessions *session.Store, m *metrics.Metrics, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		classifier: c,
		engine:     engine,
		sessions:   sessions,
		metrics:    m,
		logger:     log.WithModule("recommender"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend answers one question within a conversation session:
// classify, route, retrieve and generate, assemble sources.
// A failed request leaves the session history untouched; the detailed
// cause goes to the log and the caller gets the wrapped stage error.
func (s *Service) Recommend(ctx context.Context, sessionID, question string) (*Response, error) {
	start := time.Now()

	sessionID, memory := s.sessions.Get(sessionID)
	log := s.logger.WithSessionID(sessionID)

	result, err := s.classifier.Classify(ctx, question)
	if err != nil {
		log.WithError(err).Error("Question classification failed")
		s.metrics.RecordRecommend("unknown", "classify_error", time.Since(start).Seconds())
		return nil, err
	}

	s.metrics.RecordClassification(result.Label.String(), result.Source.String())
	if result.Source == classifier.SourceRule {
		s.metrics.RecordClassifierFallback("low_confidence")
	}

	strategy := Route(result.Label)
	if s.retrievalK > 0 {
		strategy.RetrievalK = s.retrievalK
	}

	log.WithFields(map[string]any{
		"label":      result.Label.String(),
		"source":     result.Source.String(),
		"confidence": result.Confidence,
		"strategy":   string(strategy.Kind),
	}).Info("Question classified")

	answer, docs, err := s.engine.Answer(ctx, question, strategy, memory)
	if err != nil {
		status := "generation_error"
		if errors.Is(err, ErrRetrievalFailed) {
			status = "retrieval_error"
		}
		s.metrics.RecordRecommend(string(strategy.Kind), status, time.Since(start).Seconds())
		return nil, err
	}

	s.metrics.RecordRecommend(string(strategy.Kind), "success", time.Since(start).Seconds())
	s.metrics.SetActiveSessions(s.sessions.Len())

	log.WithFields(map[string]any{
		"strategy":    string(strategy.Kind),
		"docs":        len(docs),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Recommendation completed")

	return &Response{
		SessionID: sessionID,
		Answer:    answer,
		Label:     result.Label.String(),
		Source:    result.Source.String(),
		Sources:   Assemble(docs),
	}, nil
}
