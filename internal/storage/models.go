package storage

import (
	"errors"
	"strings"
)

// Common errors
var (
	// ErrNotFound is returned when a resource is not found in the database
	ErrNotFound = errors.New("resource not found")
)

// Syllabus is one structured course syllabus record, produced by the
// offline ETL and loaded here for retrieval.
type Syllabus struct {
	UID              string `json:"uid"` // subject_code + class_number
	SubjectCode      string `json:"subject_code"`
	SubjectName      string `json:"subject_name"`
	ClassNumber      string `json:"class_number"`
	Professor        string `json:"professor"`
	Major            string `json:"major"`
	Year             string `json:"year"` // target year/grade, e.g. "3학년"
	CourseType       string `json:"course_type"`
	ProfessorPhone   string `json:"professor_phone,omitempty"`
	ProfessorEmail   string `json:"professor_email,omitempty"`
	Office           string `json:"office,omitempty"`
	ConsultationTime string `json:"consultation_time,omitempty"`
	Classroom        string `json:"classroom,omitempty"`
	Schedule         string `json:"schedule,omitempty"`
	Objectives       string `json:"objectives,omitempty"`
	Outline          string `json:"outline,omitempty"`
	CachedAt         int64  `json:"cached_at"`
}

// Metadata projects the record's presentation fields into the string map
// attached to every retrieved document.
func (s *Syllabus) Metadata() map[string]string {
	return map[string]string{
		"subject_name":      s.SubjectName,
		"professor":         s.Professor,
		"major":             s.Major,
		"year":              s.Year,
		"course_type":       s.CourseType,
		"professor_phone":   s.ProfessorPhone,
		"professor_email":   s.ProfessorEmail,
		"office":            s.Office,
		"consultation_time": s.ConsultationTime,
		"classroom":         s.Classroom,
		"schedule":          s.Schedule,
	}
}

// SearchText composes the text that gets embedded and indexed for this
// record. Basic facts come first so short factual queries still match.
func (s *Syllabus) SearchText() string {
	parts := []string{
		"교과목명: " + s.SubjectName,
		"담당교수: " + s.Professor,
		"학과/학년: " + strings.TrimSpace(s.Major+" "+s.Year),
		"이수구분: " + s.CourseType,
	}
	if s.Schedule != "" {
		parts = append(parts, "요일/시간: "+s.Schedule)
	}
	if s.Objectives != "" {
		parts = append(parts, "수업목표: "+s.Objectives)
	}
	if s.Outline != "" {
		parts = append(parts, "강의내용: "+s.Outline)
	}
	return strings.Join(parts, "\n")
}

// IsEmpty reports whether the record has no indexable content.
func (s *Syllabus) IsEmpty() bool {
	return strings.TrimSpace(s.SubjectName) == "" &&
		strings.TrimSpace(s.Objectives) == "" &&
		strings.TrimSpace(s.Outline) == ""
}
