// Package genai provides integration with LLM APIs (OpenAI, Groq, and Gemini).
// This file contains the embedding function used by the vector store.
package genai

import (
	chromem "github.com/philippgille/chromem-go"
)

// EmbeddingModel is the OpenAI model used for syllabus and query embeddings.
// text-embedding-3-small handles Korean text well at low cost.
const EmbeddingModel = "text-embedding-3-small"

// NewEmbeddingFunc creates a chromem embedding function backed by the
// OpenAI embeddings API. Returns nil if apiKey is empty (semantic search
// disabled).
func NewEmbeddingFunc(apiKey string) chromem.EmbeddingFunc {
	if apiKey == "" {
		return nil
	}
	return chromem.NewEmbeddingFuncOpenAI(apiKey, chromem.EmbeddingModelOpenAI(EmbeddingModel))
}
