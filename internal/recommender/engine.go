package recommender

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeonho-dev/course-recommender-go/internal/genai"
	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/metrics"
	"github.com/yeonho-dev/course-recommender-go/internal/rag"
	"github.com/yeonho-dev/course-recommender-go/internal/session"
)

// contextSeparator divides retrieved syllabus texts inside the prompt
const contextSeparator = "\n\n---\n\n"

// Retriever finds syllabus documents relevant to a question.
// Implemented by rag.HybridSearcher.
type Retriever interface {
	Search(ctx context.Context, query string, topN int) ([]rag.Document, error)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineMetrics records retrieval and generation durations.
func WithEngineMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine answers a question with retrieval-augmented generation.
type Engine struct {
	retriever Retriever
	generator genai.Generator
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewEngine creates an answer engine
func NewEngine(retriever Retriever, generator genai.Generator, log *logger.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		retriever: retriever,
		generator: generator,
		logger:    log.WithModule("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Answer retrieves documents for the question, composes the strategy's
// prompt with the session history, and generates an answer.
// The conversation turn is recorded only after generation succeeds, so
// a failed request leaves the session history untouched.
// Returned documents keep their retrieval rank order.
func (e *Engine) Answer(ctx context.Context, question string, strategy Strategy, memory *session.Memory) (string, []rag.Document, error) {
	retrievalStart := time.Now()
	docs, err := e.retriever.Search(ctx, question, strategy.RetrievalK)
	if err != nil {
		e.logger.WithError(err).WithField("strategy", string(strategy.Kind)).Error("Document retrieval failed")
		return "", nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	e.metrics.RecordRetrieval(time.Since(retrievalStart).Seconds())

	prompt, err := e.composePrompt(question, strategy, docs, memory)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	generationStart := time.Now()
	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		e.logger.WithError(err).WithField("strategy", string(strategy.Kind)).Error("Answer generation failed")
		return "", nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	e.metrics.RecordGeneration(string(e.generator.Provider()), time.Since(generationStart).Seconds())

	memory.Append(question, answer)

	return answer, docs, nil
}

// composePrompt renders the strategy template with the retrieved
// context and conversation history.
func (e *Engine) composePrompt(question string, strategy Strategy, docs []rag.Document, memory *session.Memory) (string, error) {
	contents := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Content != "" {
			contents = append(contents, doc.Content)
		}
	}
	contextText := strings.Join(contents, contextSeparator)
	if contextText == "" {
		contextText = "(검색된 강의계획서가 없습니다)"
	}

	var history strings.Builder
	for _, turn := range memory.History() {
		history.WriteString("학생: ")
		history.WriteString(turn.Question)
		history.WriteString("\n시스템: ")
		history.WriteString(turn.Answer)
		history.WriteString("\n")
	}

	var buf strings.Builder
	err := strategy.Template.Execute(&buf, promptData{
		Context:  contextText,
		History:  strings.TrimRight(history.String(), "\n"),
		Question: question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return buf.String(), nil
}
