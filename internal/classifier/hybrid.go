package classifier

import (
	"context"
	"fmt"

	"github.com/yeonho-dev/course-recommender-go/internal/logger"
)

// DefaultConfidenceThreshold is the minimum model confidence required to
// accept the model's label without consulting the rule fallback.
const DefaultConfidenceThreshold = 0.6

// Option configures a Hybrid classifier.
type Option func(*Hybrid)

// WithConfidenceThreshold overrides the confidence gate (0-1 exclusive of 0).
func WithConfidenceThreshold(threshold float64) Option {
	return func(h *Hybrid) {
		if threshold > 0 && threshold <= 1 {
			h.threshold = threshold
		}
	}
}

// WithRuleOnlyDegradation makes Classify fall back to the rule classifier
// when the model backend is unavailable, instead of returning
// ErrModelUnavailable. The degradation is logged on every request so it is
// never silent.
func WithRuleOnlyDegradation() Option {
	return func(h *Hybrid) {
		h.degradeToRules = true
	}
}

// Hybrid classifies questions with a statistical model and falls back to
// keyword rules when the model's confidence is below the threshold.
type Hybrid struct {
	predictor      Predictor
	rules          *RuleClassifier
	threshold      float64
	degradeToRules bool
	logger         *logger.Logger
}

// NewHybrid creates a hybrid classifier. predictor may be nil, in which
// case every call degrades to the rule path if rule-only degradation is
// enabled, and fails with ErrModelUnavailable otherwise.
func NewHybrid(predictor Predictor, log *logger.Logger, opts ...Option) *Hybrid {
	h := &Hybrid{
		predictor: predictor,
		rules:     NewRuleClassifier(),
		threshold: DefaultConfidenceThreshold,
		logger:    log.WithModule("classifier"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Threshold returns the active confidence gate.
func (h *Hybrid) Threshold() float64 {
	return h.threshold
}

// Classify runs the model over the question, takes the argmax label and its
// probability as confidence, and accepts it only when the confidence clears
// the threshold. Otherwise the rule classifier decides and the result is
// marked SourceRule with confidence 1.0.
func (h *Hybrid) Classify(ctx context.Context, question string) (Result, error) {
	if h.predictor == nil {
		return h.modelUnavailable(question, ErrModelUnavailable)
	}

	probs, err := h.predictor.Predict(ctx, question)
	if err != nil {
		return h.modelUnavailable(question, fmt.Errorf("%w: %w", ErrModelUnavailable, err))
	}

	label, confidence := argmax(probs)
	if confidence >= h.threshold {
		return Result{Label: label, Confidence: confidence, Source: SourceModel}, nil
	}

	ruleLabel := h.rules.Classify(question)
	h.logger.WithFields(map[string]any{
		"model_label":      label.String(),
		"model_confidence": confidence,
		"rule_label":       ruleLabel.String(),
		"threshold":        h.threshold,
	}).Debug("Model confidence below threshold, using rule fallback")

	return Result{Label: ruleLabel, Confidence: 1.0, Source: SourceRule}, nil
}

// modelUnavailable applies the configured degradation policy.
func (h *Hybrid) modelUnavailable(question string, err error) (Result, error) {
	if !h.degradeToRules {
		return Result{}, err
	}

	label := h.rules.Classify(question)
	h.logger.WithError(err).
		WithField("rule_label", label.String()).
		Warn("Model backend unavailable, degraded to rule-only classification")

	return Result{Label: label, Confidence: 1.0, Source: SourceRule}, nil
}

// argmax returns the highest-probability label. Ties resolve in label
// declaration order (recommend, condition, info) so results stay stable.
func argmax(probs map[Label]float64) (Label, float64) {
	best := LabelRecommend
	bestProb := -1.0
	for _, l := range []Label{LabelRecommend, LabelCondition, LabelInfo} {
		if p, ok := probs[l]; ok && p > bestProb {
			best = l
			bestProb = p
		}
	}
	if bestProb < 0 {
		return LabelOther, 0
	}
	return best, bestProb
}
