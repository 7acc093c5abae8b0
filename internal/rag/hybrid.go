package rag

import (
	"context"
	"sync"

	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
)

// HybridSearcher combines BM25 keyword search and vector semantic search
// using Reciprocal Rank Fusion (RRF) for improved retrieval
type HybridSearcher struct {
	vectorDB  *VectorDB
	bm25Index *BM25Index
	logger    *logger.Logger
}

// NewHybridSearcher creates a new hybrid searcher.
// If vectorDB is nil, only BM25 search is used.
// If bm25Index is nil, only vector search is used.
func NewHybridSearcher(vectorDB *VectorDB, bm25Index *BM25Index, log *logger.Logger) *HybridSearcher {
	return &HybridSearcher{
		vectorDB:  vectorDB,
		bm25Index: bm25Index,
		logger:    log,
	}
}

// Search runs both searches in parallel and fuses the results with RRF.
// When only one source is available, its results are returned directly.
// Returns documents in final rank order, at most topN.
func (h *HybridSearcher) Search(ctx context.Context, query string, topN int) ([]Document, error) {
	if h == nil {
		return nil, nil
	}

	vectorEnabled := h.vectorDB != nil && h.vectorDB.IsEnabled()
	bm25Enabled := h.bm25Index != nil && h.bm25Index.IsEnabled()

	if !vectorEnabled && !bm25Enabled {
		return nil, nil
	}

	// Fetch more than requested so RRF has overlap to work with
	fetchN := topN * 3
	if fetchN < 15 {
		fetchN = 15
	}

	var (
		bm25Results   []BM25Result
		vectorResults []SearchResult
		bm25Err       error
		vectorErr     error
		wg            sync.WaitGroup
	)

	if bm25Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bm25Results, bm25Err = h.bm25Index.Search(query, fetchN)
		}()
	}

	if vectorEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vectorResults, vectorErr = h.vectorDB.Search(ctx, query, fetchN)
		}()
	}

	wg.Wait()

	// Log errors but continue with whatever source succeeded
	if bm25Err != nil {
		h.logger.WithError(bm25Err).Warn("BM25 search failed")
	}
	if vectorErr != nil {
		h.logger.WithError(vectorErr).Warn("Vector search failed")
	}
	if bm25Err != nil && vectorErr != nil {
		return nil, bm25Err
	}

	if !bm25Enabled || len(bm25Results) == 0 {
		if len(vectorResults) > topN {
			vectorResults = vectorResults[:topN]
		}
		docs := make([]Document, len(vectorResults))
		for i, r := range vectorResults {
			docs[i] = Document{Content: r.Content, Metadata: r.Metadata}
		}
		return docs, nil
	}

	if !vectorEnabled || len(vectorResults) == 0 {
		if len(bm25Results) > topN {
			bm25Results = bm25Results[:topN]
		}
		docs := make([]Document, len(bm25Results))
		for i, r := range bm25Results {
			docs[i] = Document{Content: r.Content, Metadata: r.Metadata}
		}
		return docs, nil
	}

	hybridResults := FuseRRFWithDefaults(bm25Results, vectorResults, topN)

	h.logger.WithFields(map[string]any{
		"bm25_count":   len(bm25Results),
		"vector_count": len(vectorResults),
		"fused_count":  len(hybridResults),
		"query":        query,
	}).Debug("Hybrid search completed")

	return ToDocuments(hybridResults), nil
}

// Initialize initializes both indexes with syllabus records
func (h *HybridSearcher) Initialize(ctx context.Context, syllabi []*storage.Syllabus) error {
	if h == nil {
		return nil
	}

	// BM25 first, it is synchronous and CPU-only
	if h.bm25Index != nil {
		if err := h.bm25Index.Initialize(syllabi); err != nil {
			return err
		}
	}

	// Vector DB may call the embedding API
	if h.vectorDB != nil {
		if err := h.vectorDB.Initialize(ctx, syllabi); err != nil {
			return err
		}
	}

	return nil
}

// IsEnabled returns true if at least one search method is available
func (h *HybridSearcher) IsEnabled() bool {
	if h == nil {
		return false
	}
	vectorEnabled := h.vectorDB != nil && h.vectorDB.IsEnabled()
	bm25Enabled := h.bm25Index != nil && h.bm25Index.IsEnabled()
	return vectorEnabled || bm25Enabled
}

// VectorDB returns the underlying vector database
func (h *HybridSearcher) VectorDB() *VectorDB {
	if h == nil {
		return nil
	}
	return h.vectorDB
}

// BM25Index returns the underlying BM25 index
func (h *HybridSearcher) BM25Index() *BM25Index {
	if h == nil {
		return nil
	}
	return h.bm25Index
}
