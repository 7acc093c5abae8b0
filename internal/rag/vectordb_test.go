package rag

import (
	"context"
	"hash/fnv"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	chromem "github.com/philippgille/chromem-go"

	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
)

// testEmbedding is a deterministic stand-in for the OpenAI embedding API.
// Different texts map to different unit vectors.
func testEmbedding(_ context.Context, text string) ([]float32, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum32()

	v := []float32{
		float32(seed%7 + 1),
		float32(seed%13 + 1),
		float32(seed%17 + 1),
	}
	norm := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	for i := range v {
		v[i] /= norm
	}
	return v, nil
}

// newTestVectorDB opens a persistent store under dir with the stub
// embedding function, like a process (re)start would.
func newTestVectorDB(t *testing.T, dir string) *VectorDB {
	t.Helper()

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		t.Fatalf("NewPersistentDB() error = %v", err)
	}
	return &VectorDB{
		db:            db,
		embeddingFunc: testEmbedding,
		logger:        logger.NewWithWriter("error", io.Discard),
	}
}

func TestNewVectorDB_DisabledWithoutAPIKey(t *testing.T) {
	log := logger.New("info")

	vdb, err := NewVectorDB(t.TempDir(), "", 0, log)
	if err != nil {
		t.Errorf("NewVectorDB() error = %v", err)
	}
	if vdb != nil {
		t.Error("Expected nil VectorDB when API key is empty")
	}
}

func TestVectorDB_IsEnabled_Nil(t *testing.T) {
	var vdb *VectorDB
	if vdb.IsEnabled() {
		t.Error("Expected IsEnabled() = false for nil VectorDB")
	}
}

func TestVectorDB_Count_Nil(t *testing.T) {
	var vdb *VectorDB
	if count := vdb.Count(); count != 0 {
		t.Errorf("Expected Count() = 0 for nil VectorDB, got %d", count)
	}
}

func TestVectorDB_Search_Nil(t *testing.T) {
	var vdb *VectorDB

	results, err := vdb.Search(context.Background(), "추천해줘", 5)
	if err != nil {
		t.Errorf("Search() on nil VectorDB error = %v", err)
	}
	if results != nil {
		t.Error("Expected nil results for nil VectorDB")
	}
}

func TestVectorDB_Search_EmptyQuery(t *testing.T) {
	vdb := &VectorDB{initialized: true}

	results, err := vdb.Search(context.Background(), "", 5)
	if err != nil {
		t.Errorf("Search() with empty query error = %v", err)
	}
	if results != nil {
		t.Error("Expected nil results for empty query")
	}
}

func TestVectorDB_Initialize_Nil(t *testing.T) {
	var vdb *VectorDB

	if err := vdb.Initialize(context.Background(), nil); err != nil {
		t.Errorf("Initialize() on nil VectorDB error = %v", err)
	}
}

func TestVectorDB_Close(t *testing.T) {
	vdb := &VectorDB{initialized: true}

	if err := vdb.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewVectorDB_PersistPath(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)
	dir := t.TempDir()

	vdb, err := NewVectorDB(dir, "sk-test", 0, log)
	if err != nil {
		t.Fatalf("NewVectorDB() error = %v", err)
	}
	if vdb == nil {
		t.Fatal("Expected non-nil VectorDB with API key")
	}

	// The store lives directly under the given directory, no extra
	// "chromem" segment appended on top of config.VectorDir().
	if _, err := os.Stat(filepath.Join(dir, "chromem")); !os.IsNotExist(err) {
		t.Errorf("Expected no nested chromem directory under %s", dir)
	}
}

func TestVectorDB_Initialize_AddsNewRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := []*storage.Syllabus{
		{UID: "CS201-01", SubjectName: "자료구조", Professor: "김영희", Objectives: "자료구조 기초"},
	}

	vdb := newTestVectorDB(t, dir)
	if err := vdb.Initialize(ctx, first); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if got := vdb.Count(); got != 1 {
		t.Fatalf("Count() after first run = %d, want 1", got)
	}

	// Restart with a grown record set. The persisted embeddings are
	// reused and only the unseen record gets embedded.
	grown := append(first,
		&storage.Syllabus{UID: "CS301-01", SubjectName: "알고리즘", Professor: "박철수", Objectives: "탐욕 기법과 동적 계획법"},
	)

	restarted := newTestVectorDB(t, dir)
	if err := restarted.Initialize(ctx, grown); err != nil {
		t.Fatalf("Initialize() after restart error = %v", err)
	}
	if got := restarted.Count(); got != 2 {
		t.Errorf("Count() after restart = %d, want 2", got)
	}
	if !restarted.IsEnabled() {
		t.Error("Expected IsEnabled() = true after Initialize")
	}
}

func TestVectorDB_Initialize_Idempotent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	syllabi := []*storage.Syllabus{
		{UID: "CS201-01", SubjectName: "자료구조", Objectives: "자료구조 기초"},
		{UID: "CS301-01", SubjectName: "알고리즘", Objectives: "탐욕 기법"},
	}

	vdb := newTestVectorDB(t, dir)
	if err := vdb.Initialize(ctx, syllabi); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := vdb.Initialize(ctx, syllabi); err != nil {
		t.Fatalf("Initialize() second call error = %v", err)
	}
	if got := vdb.Count(); got != 2 {
		t.Errorf("Count() after repeated Initialize = %d, want 2", got)
	}
}

func TestVectorDB_Rebuild(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	vdb := newTestVectorDB(t, dir)
	err := vdb.Initialize(ctx, []*storage.Syllabus{
		{UID: "CS201-01", SubjectName: "자료구조", Objectives: "자료구조 기초"},
		{UID: "CS301-01", SubjectName: "알고리즘", Objectives: "탐욕 기법"},
	})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	// Rebuild replaces the collection outright, dropping records that
	// are gone from the source.
	err = vdb.Rebuild(ctx, []*storage.Syllabus{
		{UID: "CS201-01", SubjectName: "자료구조", Objectives: "자료구조 심화"},
	})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if got := vdb.Count(); got != 1 {
		t.Errorf("Count() after Rebuild = %d, want 1", got)
	}
}

func TestVectorDB_Rebuild_Nil(t *testing.T) {
	var vdb *VectorDB

	if err := vdb.Rebuild(context.Background(), nil); err != nil {
		t.Errorf("Rebuild() on nil VectorDB error = %v", err)
	}
}

func TestVectorDBConstants(t *testing.T) {
	if SyllabusCollectionName != "syllabi" {
		t.Errorf("SyllabusCollectionName = %q, want %q", SyllabusCollectionName, "syllabi")
	}
	if DefaultSearchResults != 5 {
		t.Errorf("DefaultSearchResults = %d, want 5", DefaultSearchResults)
	}
}
