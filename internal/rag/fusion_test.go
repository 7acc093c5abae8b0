package rag

import (
	"testing"
)

func TestFuseRRF(t *testing.T) {
	bm25Results := []BM25Result{
		{UID: "CS201-01", Score: 10.0, Rank: 1},
		{UID: "CS301-01", Score: 8.0, Rank: 2},
		{UID: "CS302-01", Score: 5.0, Rank: 3},
	}

	vectorResults := []SearchResult{
		{UID: "CS301-01", Similarity: 0.9},
		{UID: "CS401-01", Similarity: 0.85},
		{UID: "CS201-01", Similarity: 0.7},
	}

	results := FuseRRFWithDefaults(bm25Results, vectorResults, 10)

	if len(results) == 0 {
		t.Fatal("FuseRRF() returned no results")
	}

	topUIDs := make(map[string]bool)
	for i := 0; i < min(3, len(results)); i++ {
		topUIDs[results[i].UID] = true
	}

	// CS301-01 ranks high in both lists, so it should come out on top
	if results[0].UID != "CS301-01" {
		t.Errorf("FuseRRF() top result = %s, want CS301-01 (appears in both lists with high ranks)", results[0].UID)
	}

	if !topUIDs["CS201-01"] {
		t.Error("FuseRRF() CS201-01 should be in top 3 (appears in both lists)")
	}
}

func TestFuseRRF_BM25Only(t *testing.T) {
	bm25Results := []BM25Result{
		{UID: "CS201-01", Score: 10.0, Rank: 1},
		{UID: "CS301-01", Score: 8.0, Rank: 2},
	}

	results := FuseRRFWithDefaults(bm25Results, nil, 10)

	if len(results) != 2 {
		t.Errorf("FuseRRF() with BM25 only returned %d results, want 2", len(results))
	}
	if results[0].UID != "CS201-01" {
		t.Errorf("FuseRRF() first result = %s, want CS201-01", results[0].UID)
	}
}

func TestFuseRRF_VectorOnly(t *testing.T) {
	vectorResults := []SearchResult{
		{UID: "CS201-01", Similarity: 0.9},
		{UID: "CS301-01", Similarity: 0.8},
	}

	results := FuseRRFWithDefaults(nil, vectorResults, 10)

	if len(results) != 2 {
		t.Errorf("FuseRRF() with vector only returned %d results, want 2", len(results))
	}
	if results[0].UID != "CS201-01" {
		t.Errorf("FuseRRF() first result = %s, want CS201-01", results[0].UID)
	}
}

func TestFuseRRF_Empty(t *testing.T) {
	results := FuseRRFWithDefaults(nil, nil, 10)

	if len(results) != 0 {
		t.Errorf("FuseRRF() with empty inputs returned %d results, want 0", len(results))
	}
}

func TestFuseRRF_TopN(t *testing.T) {
	bm25Results := make([]BM25Result, 20)
	for i := range bm25Results {
		bm25Results[i] = BM25Result{
			UID:   "course" + string(rune('A'+i)),
			Score: float64(20 - i),
			Rank:  i + 1,
		}
	}

	results := FuseRRFWithDefaults(bm25Results, nil, 5)

	if len(results) != 5 {
		t.Errorf("FuseRRF() with topN=5 returned %d results, want 5", len(results))
	}
}

func TestFuseRRF_WeightBalance(t *testing.T) {
	bm25Results := []BM25Result{
		{UID: "bm25_top", Score: 10.0, Rank: 1},
	}

	vectorResults := []SearchResult{
		{UID: "vector_top", Similarity: 0.95},
	}

	// With default weights (BM25=0.4, Vector=0.6), vector_top should rank higher
	results := FuseRRFWithDefaults(bm25Results, vectorResults, 10)

	if len(results) != 2 {
		t.Fatalf("FuseRRF() returned %d results, want 2", len(results))
	}
	if results[0].UID != "vector_top" {
		t.Errorf("FuseRRF() with default weights: first result = %s, want vector_top (60%% weight)", results[0].UID)
	}

	results = FuseRRF(bm25Results, vectorResults, 0.8, 10)

	if results[0].UID != "bm25_top" {
		t.Errorf("FuseRRF() with BM25 weight=0.8: first result = %s, want bm25_top", results[0].UID)
	}
}

func TestFuseRRF_MergesContentAndMetadata(t *testing.T) {
	bm25Results := []BM25Result{
		{UID: "CS201-01", Score: 10.0, Rank: 1},
	}
	vectorResults := []SearchResult{
		{
			UID:      "CS201-01",
			Content:  "교과목명: 자료구조",
			Metadata: map[string]string{"subject_name": "자료구조"},
		},
	}

	results := FuseRRFWithDefaults(bm25Results, vectorResults, 10)

	if len(results) != 1 {
		t.Fatalf("FuseRRF() returned %d results, want 1", len(results))
	}
	if results[0].Content != "교과목명: 자료구조" {
		t.Errorf("FuseRRF() should backfill content from vector result, got %q", results[0].Content)
	}
	if results[0].Metadata["subject_name"] != "자료구조" {
		t.Error("FuseRRF() should backfill metadata from vector result")
	}
	if results[0].BM25Rank != 1 || results[0].VectorRank != 1 {
		t.Errorf("FuseRRF() ranks = (%d, %d), want (1, 1)", results[0].BM25Rank, results[0].VectorRank)
	}
}

func TestToDocuments(t *testing.T) {
	hybridResults := []HybridResult{
		{
			UID:      "CS201-01",
			Content:  "교과목명: 자료구조",
			Metadata: map[string]string{"subject_name": "자료구조", "professor": "김영희"},
			RRFScore: 0.02,
		},
		{
			UID:      "CS301-01",
			Content:  "교과목명: 운영체제",
			Metadata: map[string]string{"subject_name": "운영체제"},
			RRFScore: 0.015,
		},
	}

	docs := ToDocuments(hybridResults)

	if len(docs) != 2 {
		t.Fatalf("ToDocuments() returned %d documents, want 2", len(docs))
	}
	if docs[0].Metadata["subject_name"] != "자료구조" {
		t.Errorf("ToDocuments() first document subject = %s, want 자료구조", docs[0].Metadata["subject_name"])
	}
	if docs[1].Content != "교과목명: 운영체제" {
		t.Errorf("ToDocuments() second document content = %q", docs[1].Content)
	}
}

func TestToDocuments_Empty(t *testing.T) {
	if docs := ToDocuments(nil); docs != nil {
		t.Errorf("ToDocuments(nil) = %v, want nil", docs)
	}
}
