package recommender

import "errors"

// Sentinel errors for the two pipeline stages that can fail after
// classification. Callers match with errors.Is; the wrapped cause
// carries provider detail for logs.
var (
	// ErrRetrievalFailed is returned when the retriever cannot produce documents
	ErrRetrievalFailed = errors.New("retrieval failed")

	// ErrGenerationFailed is returned when the language model cannot produce an answer
	ErrGenerationFailed = errors.New("generation failed")
)
