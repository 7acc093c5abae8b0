// Package classifier assigns a question-type label to incoming questions.
// It combines a statistical model prediction with a deterministic
// keyword-rule fallback gated on the model's reported confidence.
package classifier

import (
	"context"
	"errors"
)

// Label is the question-type category used to select a generation strategy.
type Label int

const (
	// LabelRecommend marks open-ended course recommendation questions.
	LabelRecommend Label = iota
	// LabelCondition marks questions that filter by constraints
	// (year, major, assignments, registration requirements).
	LabelCondition
	// LabelInfo marks factual lookups (professor, contact, course name).
	LabelInfo
	// LabelOther is returned when no category applies. Downstream routing
	// treats it like LabelRecommend.
	LabelOther
)

// String returns the label name used in logs and metrics.
func (l Label) String() string {
	switch l {
	case LabelRecommend:
		return "recommend"
	case LabelCondition:
		return "condition"
	case LabelInfo:
		return "info"
	case LabelOther:
		return "other"
	default:
		return "unknown"
	}
}

// Source records which classification path produced the final label.
type Source int

const (
	// SourceModel means the statistical model's prediction was used directly.
	SourceModel Source = iota
	// SourceRule means the keyword-rule fallback produced the label.
	SourceRule
)

// String returns the source name used in logs and metrics.
func (s Source) String() string {
	if s == SourceRule {
		return "rule"
	}
	return "model"
}

// Result is the outcome of classifying one question.
// Confidence is 1.0 when Source is SourceRule since rule decisions are
// deterministic overrides rather than probabilistic estimates.
type Result struct {
	Label      Label
	Confidence float64
	Source     Source
}

// ErrModelUnavailable is returned when the statistical model backend
// cannot produce a prediction.
var ErrModelUnavailable = errors.New("classification model unavailable")

// Predictor is the statistical model collaborator. It returns a probability
// distribution over the three modeled labels (recommend, condition, info),
// summing to 1. LabelOther is never predicted by the model; it only arises
// from the rule fallback.
type Predictor interface {
	Predict(ctx context.Context, question string) (map[Label]float64, error)
}
