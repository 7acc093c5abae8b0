// Command import loads syllabus records from a JSON export into the
// SQLite store and optionally rebuilds the vector index, so the server
// starts with warm retrieval indexes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yeonho-dev/course-recommender-go/internal/config"
	"github.com/yeonho-dev/course-recommender-go/internal/logger"
	"github.com/yeonho-dev/course-recommender-go/internal/rag"
	"github.com/yeonho-dev/course-recommender-go/internal/storage"
)

// CLI flags
var (
	fileFlag  = flag.String("file", "", "Path to the syllabus JSON export (array of records)")
	embedFlag = flag.Bool("embed", false, "Rebuild the vector index after import (requires OpenAI API key)")
)

func main() {
	flag.Parse()

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file <syllabi.json> [-embed]")
		os.Exit(2)
	}

	cfg, err := config.LoadForMode(config.ImportMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	syllabi, err := readExport(*fileFlag)
	if err != nil {
		log.WithError(err).Fatal("Failed to read syllabus export")
	}
	log.WithField("records", len(syllabi)).WithField("file", *fileFlag).Info("Export parsed")

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	start := time.Now()
	if err := db.SaveSyllabiBatch(ctx, syllabi); err != nil {
		log.WithError(err).Fatal("Failed to save syllabi")
	}

	total, err := db.CountSyllabi(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to count syllabi")
	}
	log.WithFields(map[string]any{
		"imported":    len(syllabi),
		"total":       total,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Syllabi imported")

	if *embedFlag {
		embedAll(ctx, cfg, db, log)
	}
}

// readExport parses the JSON export and drops records without a UID.
func readExport(path string) ([]*storage.Syllabus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []*storage.Syllabus
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	valid := records[:0]
	for _, record := range records {
		if record != nil && record.UID != "" {
			valid = append(valid, record)
		}
	}
	return valid, nil
}

// embedAll rebuilds the persistent vector index from the full store.
func embedAll(ctx context.Context, cfg *config.Config, db *storage.DB, log *logger.Logger) {
	vectorDB, err := rag.NewVectorDB(cfg.VectorDir(), cfg.OpenAIAPIKey, float32(cfg.MinSimilarity), log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create vector store")
	}
	if vectorDB == nil {
		log.Warn("OpenAI API key not configured, skipping embedding")
		return
	}
	defer func() { _ = vectorDB.Close() }()

	syllabi, err := db.GetAllSyllabi(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to load syllabi for embedding")
	}

	start := time.Now()
	if err := vectorDB.Rebuild(ctx, syllabi); err != nil {
		log.WithError(err).Fatal("Failed to build vector index")
	}
	log.WithFields(map[string]any{
		"documents":   vectorDB.Count(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Vector index built")
}
