// Package rag provides hybrid retrieval over course syllabi using
// chromem-go for vector search and BM25 for keyword search.
package rag

import (
	"context"
	"fmt"
	"sort"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/yeonho-dev/course-recommender-go/internal/genai"
	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
)

const (
	// SyllabusCollectionName is the name of the syllabus collection in chromem
	SyllabusCollectionName = "syllabi"

	// DefaultSearchResults is the default number of results for semantic search
	DefaultSearchResults = 5

	// MaxSearchResults is the maximum number of results for semantic search
	MaxSearchResults = 50
)

// Document is a retrieved syllabus passed to the answer engine.
// Metadata carries the structured presentation fields of the record.
type Document struct {
	Content  string
	Metadata map[string]string
}

// SearchResult represents a semantic search result
type SearchResult struct {
	UID        string
	Content    string
	Metadata   map[string]string
	Similarity float32 // Cosine similarity score (0-1)
}

// VectorDB wraps a chromem-go database for syllabus semantic search
type VectorDB struct {
	db            *chromem.DB
	collection    *chromem.Collection
	embeddingFunc chromem.EmbeddingFunc
	minSimilarity float32
	logger        *logger.Logger
	mu            sync.RWMutex
	initialized   bool
}

// NewVectorDB creates a new vector database for syllabus search.
// persistDir is the directory holding the persisted vector store
// (config.VectorDir() in production).
// minSimilarity filters results below the given cosine similarity; 0 disables the floor.
// Returns nil if apiKey is empty (semantic search disabled, keyword search still works).
func NewVectorDB(persistDir, apiKey string, minSimilarity float32, log *logger.Logger) (*VectorDB, error) {
	if apiKey == "" {
		log.Info("OpenAI API key not configured, semantic search disabled")
		return nil, nil
	}

	embeddingFunc := genai.NewEmbeddingFunc(apiKey)

	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem database: %w", err)
	}

	return &VectorDB{
		db:            db,
		embeddingFunc: embeddingFunc,
		minSimilarity: minSimilarity,
		logger:        log,
	}, nil
}

// Initialize loads syllabi into the vector store.
// Embeddings persisted from a previous run are reused as-is; records whose
// UID is not yet in the collection are embedded and added, so an index
// built before an import catches up on startup.
func (v *VectorDB) Initialize(ctx context.Context, syllabi []*storage.Syllabus) error {
	if v == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	collection, err := v.db.GetOrCreateCollection(SyllabusCollectionName, nil, v.embeddingFunc)
	if err != nil {
		return fmt.Errorf("failed to get/create collection: %w", err)
	}
	v.collection = collection

	existingCount := collection.Count()
	if existingCount > 0 {
		missing := make([]*storage.Syllabus, 0)
		for _, syl := range syllabi {
			if syl.IsEmpty() {
				continue
			}
			if _, err := collection.GetByID(ctx, syl.UID); err != nil {
				missing = append(missing, syl)
			}
		}
		if len(missing) > 0 {
			if err := v.addSyllabiInternal(ctx, missing); err != nil {
				return fmt.Errorf("failed to add syllabi: %w", err)
			}
			v.logger.WithFields(map[string]any{
				"existing": existingCount,
				"added":    len(missing),
			}).Info("Indexed new syllabi for semantic search")
		} else {
			v.logger.WithField("count", existingCount).Info("Loaded existing syllabus embeddings from disk")
		}
		v.initialized = true
		return nil
	}

	if len(syllabi) > 0 {
		if err := v.addSyllabiInternal(ctx, syllabi); err != nil {
			return fmt.Errorf("failed to add syllabi: %w", err)
		}
		v.logger.WithField("count", len(syllabi)).Info("Indexed syllabi for semantic search")
	}

	v.initialized = true
	return nil
}

// Rebuild drops the persisted collection and re-embeds every record.
// Use this when source records changed in place; Initialize only adds
// records it has not seen before.
func (v *VectorDB) Rebuild(ctx context.Context, syllabi []*storage.Syllabus) error {
	if v == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.db.DeleteCollection(SyllabusCollectionName); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	collection, err := v.db.GetOrCreateCollection(SyllabusCollectionName, nil, v.embeddingFunc)
	if err != nil {
		return fmt.Errorf("failed to get/create collection: %w", err)
	}
	v.collection = collection

	if len(syllabi) > 0 {
		if err := v.addSyllabiInternal(ctx, syllabi); err != nil {
			return fmt.Errorf("failed to add syllabi: %w", err)
		}
	}
	v.logger.WithField("count", collection.Count()).Info("Rebuilt syllabus embeddings")

	v.initialized = true
	return nil
}

// addSyllabiInternal adds records (internal, assumes lock held).
// Each syllabus becomes one document: the composed search text as content,
// the presentation fields as metadata, the record UID as document ID.
func (v *VectorDB) addSyllabiInternal(ctx context.Context, syllabi []*storage.Syllabus) error {
	docs := make([]chromem.Document, 0, len(syllabi))
	for _, syl := range syllabi {
		if syl.IsEmpty() {
			continue
		}
		metadata := syl.Metadata()
		metadata["uid"] = syl.UID
		docs = append(docs, chromem.Document{
			ID:       syl.UID,
			Content:  syl.SearchText(),
			Metadata: metadata,
		})
	}

	if len(docs) == 0 {
		return nil
	}

	if err := v.collection.AddDocuments(ctx, docs, 4); err != nil { // 4 concurrent embeddings
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Search performs semantic search for syllabi matching the query.
// Results below the configured similarity floor are dropped, the rest
// are returned sorted by similarity (descending), at most topN.
func (v *VectorDB) Search(ctx context.Context, query string, topN int) ([]SearchResult, error) {
	if v == nil || v.collection == nil {
		return nil, nil
	}
	if query == "" {
		return nil, nil
	}

	if topN <= 0 {
		topN = DefaultSearchResults
	}
	if topN > MaxSearchResults {
		topN = MaxSearchResults
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	// chromem-go returns an error if nResults > document count
	docCount := v.collection.Count()
	if docCount == 0 {
		return nil, nil
	}
	queryLimit := topN
	if queryLimit > docCount {
		queryLimit = docCount
	}

	results, err := v.collection.Query(ctx, query, queryLimit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	searchResults := make([]SearchResult, 0, len(results))
	for _, result := range results {
		if v.minSimilarity > 0 && result.Similarity < v.minSimilarity {
			continue
		}
		uid := result.Metadata["uid"]
		if uid == "" {
			uid = result.ID
		}
		searchResults = append(searchResults, SearchResult{
			UID:        uid,
			Content:    result.Content,
			Metadata:   result.Metadata,
			Similarity: result.Similarity,
		})
	}

	sort.Slice(searchResults, func(i, j int) bool {
		return searchResults[i].Similarity > searchResults[j].Similarity
	})

	return searchResults, nil
}

// Count returns the number of documents in the collection
func (v *VectorDB) Count() int {
	if v == nil || v.collection == nil {
		return 0
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.collection.Count()
}

// IsEnabled returns true if the vector database is initialized and ready
func (v *VectorDB) IsEnabled() bool {
	if v == nil {
		return false
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.initialized && v.collection != nil
}

// Close closes the vector database
func (v *VectorDB) Close() error {
	// chromem-go persists on every operation, nothing to flush
	return nil
}
