// Package recommender implements the question answering pipeline:
// classify, route to a prompt strategy, retrieve, generate, assemble.
package recommender

import (
	"text/template"

	"github.com/yeonho-dev/course-recommender-go/internal/classifier"
)

// DefaultRetrievalK is the number of syllabi retrieved per question
const DefaultRetrievalK = 5

// StrategyKind names the prompt strategy for logs and metrics.
type StrategyKind string

const (
	StrategyRecommend StrategyKind = "recommend"
	StrategyCondition StrategyKind = "condition"
	StrategyInfo      StrategyKind = "info"
)

// Strategy bundles the prompt template and retrieval depth for one
// question category.
type Strategy struct {
	Kind       StrategyKind
	Template   *template.Template
	RetrievalK int
}

// Route maps a classification label to its strategy. Total over the
// label enum: every label switches explicitly, and questions that fit
// no category fall back to the recommendation strategy.
func Route(label classifier.Label) Strategy {
	switch label {
	case classifier.LabelCondition:
		return Strategy{Kind: StrategyCondition, Template: ConditionPrompt, RetrievalK: DefaultRetrievalK}
	case classifier.LabelInfo:
		return Strategy{Kind: StrategyInfo, Template: InfoPrompt, RetrievalK: DefaultRetrievalK}
	case classifier.LabelRecommend, classifier.LabelOther:
		return Strategy{Kind: StrategyRecommend, Template: RecommendPrompt, RetrievalK: DefaultRetrievalK}
	}
	// Unreachable with the current enum, same fallback as LabelOther
	return Strategy{Kind: StrategyRecommend, Template: RecommendPrompt, RetrievalK: DefaultRetrievalK}
}
