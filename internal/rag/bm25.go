package rag

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/crawlab-team/bm25"

	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
)

// BM25Result represents a BM25 keyword search result
type BM25Result struct {
	UID      string
	Content  string
	Metadata map[string]string
	Score    float64 // BM25 score (higher is better)
	Rank     int     // Rank position (1-indexed)
}

// BM25Index provides keyword-based search over syllabus texts.
// Complements vector search when the query uses exact course or
// professor names that embeddings may blur.
type BM25Index struct {
	bm25Okapi   *bm25.BM25Okapi
	corpus      []string // Document search texts, index-aligned with docUIDs
	docUIDs     []string
	metadata    map[string]map[string]string // UID -> presentation fields
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

// NewBM25Index creates a new BM25 index
func NewBM25Index(log *logger.Logger) *BM25Index {
	return &BM25Index{
		metadata: make(map[string]map[string]string),
		logger:   log,
	}
}

// Initialize builds the BM25 index from syllabus records.
// Each record contributes one document, its composed search text.
func (idx *BM25Index) Initialize(syllabi []*storage.Syllabus) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	var corpus []string
	var docUIDs []string
	idx.metadata = make(map[string]map[string]string)

	for _, syl := range syllabi {
		if syl.IsEmpty() {
			continue
		}
		corpus = append(corpus, syl.SearchText())
		docUIDs = append(docUIDs, syl.UID)
		idx.metadata[syl.UID] = syl.Metadata()
	}

	if len(corpus) == 0 {
		idx.initialized = true
		return nil
	}

	// k1=1.5, b=0.75 are standard BM25 parameters
	bm25Okapi, err := bm25.NewBM25Okapi(corpus, tokenizeCJK, 1.5, 0.75, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}

	idx.corpus = corpus
	idx.docUIDs = docUIDs
	idx.bm25Okapi = bm25Okapi
	idx.initialized = true

	idx.logger.WithField("docs", len(corpus)).Info("BM25 index initialized")
	return nil
}

// Search performs BM25 keyword search.
// Returns results sorted by score (descending), at most topN.
func (idx *BM25Index) Search(query string, topN int) ([]BM25Result, error) {
	if idx == nil || !idx.initialized || idx.bm25Okapi == nil {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	tokenizedQuery := tokenizeCJK(query)
	if len(tokenizedQuery) == 0 {
		return nil, nil
	}

	scores, err := idx.bm25Okapi.GetScores(tokenizedQuery)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}

	type scoredDoc struct {
		docID int
		score float64
	}
	var scoredDocs []scoredDoc
	for docID, score := range scores {
		if score > 0 {
			scoredDocs = append(scoredDocs, scoredDoc{docID: docID, score: score})
		}
	}

	sort.Slice(scoredDocs, func(i, j int) bool {
		return scoredDocs[i].score > scoredDocs[j].score
	})

	results := make([]BM25Result, 0, len(scoredDocs))
	for i, sd := range scoredDocs {
		if topN > 0 && len(results) >= topN {
			break
		}
		uid := idx.docUIDs[sd.docID]
		results = append(results, BM25Result{
			UID:      uid,
			Content:  idx.corpus[sd.docID],
			Metadata: idx.metadata[uid],
			Score:    sd.score,
			Rank:     i + 1,
		})
	}

	return results, nil
}

// IsEnabled returns true if the index is initialized
func (idx *BM25Index) IsEnabled() bool {
	if idx == nil {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.initialized && idx.bm25Okapi != nil
}

// Count returns the number of documents in the index
func (idx *BM25Index) Count() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.corpus)
}

// tokenizeCJK performs tokenization that handles mixed Korean/English text.
// Strategy:
// 1. Lowercase for case-insensitive matching
// 2. Split on whitespace and punctuation
// 3. Generate character bigrams for CJK runs (handles agglutinated Korean)
// 4. Keep individual characters so single-syllable queries still match
func tokenizeCJK(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var currentWord strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if isCJK(r) {
				// Flush any pending non-CJK word
				if currentWord.Len() > 0 {
					tokens = append(tokens, currentWord.String())
					currentWord.Reset()
				}
				tokens = append(tokens, string(r))
				if i+1 < len(runes) && isCJK(runes[i+1]) {
					tokens = append(tokens, string(r)+string(runes[i+1]))
				}
			} else {
				currentWord.WriteRune(r)
			}
		} else {
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
		}
	}

	if currentWord.Len() > 0 {
		tokens = append(tokens, currentWord.String())
	}

	return tokens
}

// isCJK returns true if the rune is a CJK character
func isCJK(r rune) bool {
	return unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)
}
