package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleSyllabus(uid, name string) *Syllabus {
	return &Syllabus{
		UID:              uid,
		SubjectCode:      strings.Split(uid, "-")[0],
		SubjectName:      name,
		ClassNumber:      "01",
		Professor:        "김영희",
		Major:            "컴퓨터공학과",
		Year:             "2학년",
		CourseType:       "전공필수",
		ProfessorEmail:   "kim@example.ac.kr",
		Office:           "공학관 503호",
		ConsultationTime: "수 14:00-16:00",
		Classroom:        "공학관 201호",
		Schedule:         "월 09:00-10:30, 수 09:00-10:30",
		Objectives:       "자료구조의 기본 개념을 이해한다.",
		Outline:          "배열, 연결 리스트, 트리, 그래프를 다룬다.",
	}
}

func TestSaveAndGetSyllabus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := sampleSyllabus("CS201-01", "자료구조")
	if err := db.SaveSyllabus(ctx, s); err != nil {
		t.Fatalf("SaveSyllabus failed: %v", err)
	}

	got, err := db.GetSyllabusByUID(ctx, "CS201-01")
	if err != nil {
		t.Fatalf("GetSyllabusByUID failed: %v", err)
	}
	if got.SubjectName != "자료구조" {
		t.Errorf("Expected subject name 자료구조, got %s", got.SubjectName)
	}
	if got.Professor != "김영희" {
		t.Errorf("Expected professor 김영희, got %s", got.Professor)
	}
	if got.CachedAt == 0 {
		t.Error("Expected cached_at to be set")
	}
}

func TestGetSyllabusNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetSyllabusByUID(context.Background(), "NOPE-00")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveSyllabusUpsert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := sampleSyllabus("CS201-01", "자료구조")
	if err := db.SaveSyllabus(ctx, s); err != nil {
		t.Fatalf("SaveSyllabus failed: %v", err)
	}

	s.Professor = "박철수"
	if err := db.SaveSyllabus(ctx, s); err != nil {
		t.Fatalf("SaveSyllabus (update) failed: %v", err)
	}

	got, err := db.GetSyllabusByUID(ctx, "CS201-01")
	if err != nil {
		t.Fatalf("GetSyllabusByUID failed: %v", err)
	}
	if got.Professor != "박철수" {
		t.Errorf("Expected updated professor 박철수, got %s", got.Professor)
	}

	count, err := db.CountSyllabi(ctx)
	if err != nil {
		t.Fatalf("CountSyllabi failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 record after upsert, got %d", count)
	}
}

func TestSaveSyllabiBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	syllabi := []*Syllabus{
		sampleSyllabus("CS201-01", "자료구조"),
		sampleSyllabus("CS301-01", "운영체제"),
		sampleSyllabus("CS302-01", "데이터베이스"),
	}
	if err := db.SaveSyllabiBatch(ctx, syllabi); err != nil {
		t.Fatalf("SaveSyllabiBatch failed: %v", err)
	}

	all, err := db.GetAllSyllabi(ctx)
	if err != nil {
		t.Fatalf("GetAllSyllabi failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 syllabi, got %d", len(all))
	}

	// Empty batch is a no-op
	if err := db.SaveSyllabiBatch(ctx, nil); err != nil {
		t.Errorf("SaveSyllabiBatch with empty slice failed: %v", err)
	}
}

func TestSearchText(t *testing.T) {
	s := sampleSyllabus("CS201-01", "자료구조")
	text := s.SearchText()

	for _, want := range []string{"교과목명: 자료구조", "담당교수: 김영희", "수업목표", "강의내용"} {
		if !strings.Contains(text, want) {
			t.Errorf("SearchText missing %q:\n%s", want, text)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	empty := &Syllabus{UID: "X-00"}
	if !empty.IsEmpty() {
		t.Error("Expected empty syllabus to report IsEmpty")
	}
	if sampleSyllabus("CS201-01", "자료구조").IsEmpty() {
		t.Error("Expected populated syllabus to not report IsEmpty")
	}
}

func TestMetadataFields(t *testing.T) {
	s := sampleSyllabus("CS201-01", "자료구조")
	md := s.Metadata()

	if md["subject_name"] != "자료구조" {
		t.Errorf("Expected subject_name 자료구조, got %s", md["subject_name"])
	}
	if md["professor_email"] != "kim@example.ac.kr" {
		t.Errorf("Expected professor email, got %s", md["professor_email"])
	}
	if _, ok := md["objectives"]; ok {
		t.Error("Metadata should not carry long-form objectives text")
	}
}
