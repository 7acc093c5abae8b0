package rag

import (
	"sort"
)

const (
	// RRFConstant is the constant used in the RRF formula: 1 / (k + rank).
	// The standard value 60 balances top-ranked documents against the long tail.
	RRFConstant = 60

	// DefaultBM25Weight is the default weight for BM25 results in RRF fusion.
	// 0.4 means BM25 contributes 40% and vector search contributes 60%.
	DefaultBM25Weight = 0.4
)

// HybridResult represents a result from hybrid search (BM25 + Vector)
type HybridResult struct {
	UID        string
	Content    string
	Metadata   map[string]string
	BM25Score  float64 // BM25 score (0 if not found in BM25)
	VectorSim  float32 // Vector similarity (0 if not found in vector)
	RRFScore   float64 // Combined RRF score
	BM25Rank   int     // Rank in BM25 results (0 if not found)
	VectorRank int     // Rank in vector results (0 if not found)
}

// FuseRRF combines BM25 and vector search results using Reciprocal Rank Fusion.
//
// RRF formula: score(d) = Σ (w_i / (k + rank_i))
// where k is RRFConstant, rank_i is the rank in each source,
// and w_i is the weight for each source.
//
// bm25Weight is the BM25 weight (0-1); the vector weight is (1 - bm25Weight).
// Returns combined results sorted by RRF score (descending), at most topN.
func FuseRRF(bm25Results []BM25Result, vectorResults []SearchResult, bm25Weight float64, topN int) []HybridResult {
	if bm25Weight < 0 {
		bm25Weight = 0
	}
	if bm25Weight > 1 {
		bm25Weight = 1
	}
	vectorWeight := 1.0 - bm25Weight

	resultMap := make(map[string]*HybridResult)

	for i, r := range bm25Results {
		rank := i + 1
		score := bm25Weight / float64(RRFConstant+rank)

		if existing, ok := resultMap[r.UID]; ok {
			existing.BM25Score = r.Score
			existing.BM25Rank = rank
			existing.RRFScore += score
		} else {
			resultMap[r.UID] = &HybridResult{
				UID:       r.UID,
				Content:   r.Content,
				Metadata:  r.Metadata,
				BM25Score: r.Score,
				BM25Rank:  rank,
				RRFScore:  score,
			}
		}
	}

	for i, r := range vectorResults {
		rank := i + 1
		score := vectorWeight / float64(RRFConstant+rank)

		if existing, ok := resultMap[r.UID]; ok {
			existing.VectorSim = r.Similarity
			existing.VectorRank = rank
			existing.RRFScore += score
			if existing.Content == "" {
				existing.Content = r.Content
			}
			if existing.Metadata == nil {
				existing.Metadata = r.Metadata
			}
		} else {
			resultMap[r.UID] = &HybridResult{
				UID:        r.UID,
				Content:    r.Content,
				Metadata:   r.Metadata,
				VectorSim:  r.Similarity,
				VectorRank: rank,
				RRFScore:   score,
			}
		}
	}

	results := make([]HybridResult, 0, len(resultMap))
	for _, r := range resultMap {
		results = append(results, *r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RRFScore > results[j].RRFScore
	})

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	return results
}

// FuseRRFWithDefaults uses the default BM25 weight (0.4)
func FuseRRFWithDefaults(bm25Results []BM25Result, vectorResults []SearchResult, topN int) []HybridResult {
	return FuseRRF(bm25Results, vectorResults, DefaultBM25Weight, topN)
}

// ToDocuments converts hybrid results to documents in rank order
func ToDocuments(hybridResults []HybridResult) []Document {
	if len(hybridResults) == 0 {
		return nil
	}

	docs := make([]Document, len(hybridResults))
	for i, hr := range hybridResults {
		docs[i] = Document{
			Content:  hr.Content,
			Metadata: hr.Metadata,
		}
	}
	return docs
}
