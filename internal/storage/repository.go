package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// SaveSyllabus inserts or updates a single syllabus record.
func (db *DB) SaveSyllabus(ctx context.Context, s *Syllabus) error {
	query := `
		INSERT INTO syllabi (uid, subject_code, subject_name, class_number, professor, major, year, course_type,
			professor_phone, professor_email, office, consultation_time, classroom, schedule, objectives, outline, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			subject_code = excluded.subject_code,
			subject_name = excluded.subject_name,
			class_number = excluded.class_number,
			professor = excluded.professor,
			major = excluded.major,
			year = excluded.year,
			course_type = excluded.course_type,
			professor_phone = excluded.professor_phone,
			professor_email = excluded.professor_email,
			office = excluded.office,
			consultation_time = excluded.consultation_time,
			classroom = excluded.classroom,
			schedule = excluded.schedule,
			objectives = excluded.objectives,
			outline = excluded.outline,
			cached_at = excluded.cached_at
	`
	_, err := db.conn.ExecContext(ctx, query,
		s.UID, s.SubjectCode, s.SubjectName, s.ClassNumber, s.Professor, s.Major, s.Year, s.CourseType,
		s.ProfessorPhone, s.ProfessorEmail, s.Office, s.ConsultationTime, s.Classroom, s.Schedule,
		s.Objectives, s.Outline, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save syllabus %s: %w", s.UID, err)
	}
	return nil
}

// SaveSyllabiBatch inserts or updates multiple syllabus records in a single transaction.
// The ETL loads full semesters at once; batching keeps the WAL write lock short.
func (db *DB) SaveSyllabiBatch(ctx context.Context, syllabi []*Syllabus) error {
	if len(syllabi) == 0 {
		return nil
	}

	query := `
		INSERT INTO syllabi (uid, subject_code, subject_name, class_number, professor, major, year, course_type,
			professor_phone, professor_email, office, consultation_time, classroom, schedule, objectives, outline, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			subject_code = excluded.subject_code,
			subject_name = excluded.subject_name,
			class_number = excluded.class_number,
			professor = excluded.professor,
			major = excluded.major,
			year = excluded.year,
			course_type = excluded.course_type,
			professor_phone = excluded.professor_phone,
			professor_email = excluded.professor_email,
			office = excluded.office,
			consultation_time = excluded.consultation_time,
			classroom = excluded.classroom,
			schedule = excluded.schedule,
			objectives = excluded.objectives,
			outline = excluded.outline,
			cached_at = excluded.cached_at
	`

	start := time.Now()
	cachedAt := time.Now().Unix()
	err := db.execBatch(ctx, query, func(stmt *sql.Stmt) error {
		for _, s := range syllabi {
			if _, err := stmt.ExecContext(ctx,
				s.UID, s.SubjectCode, s.SubjectName, s.ClassNumber, s.Professor, s.Major, s.Year, s.CourseType,
				s.ProfessorPhone, s.ProfessorEmail, s.Office, s.ConsultationTime, s.Classroom, s.Schedule,
				s.Objectives, s.Outline, cachedAt,
			); err != nil {
				return fmt.Errorf("failed to save syllabus %s: %w", s.UID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	duration := time.Since(start)
	slog.DebugContext(ctx, "batch operation completed",
		"operation", "SaveSyllabiBatch",
		"count", len(syllabi),
		"duration_ms", duration.Milliseconds())

	if duration > 500*time.Millisecond {
		slog.WarnContext(ctx, "slow batch operation",
			"operation", "SaveSyllabiBatch",
			"count", len(syllabi),
			"duration_ms", duration.Milliseconds())
	}
	return nil
}

// GetSyllabusByUID retrieves a syllabus by its UID.
func (db *DB) GetSyllabusByUID(ctx context.Context, uid string) (*Syllabus, error) {
	query := `SELECT uid, subject_code, subject_name, class_number, professor, major, year, course_type,
		professor_phone, professor_email, office, consultation_time, classroom, schedule, objectives, outline, cached_at
		FROM syllabi WHERE uid = ?`

	s := &Syllabus{}
	err := db.conn.QueryRowContext(ctx, query, uid).Scan(
		&s.UID, &s.SubjectCode, &s.SubjectName, &s.ClassNumber, &s.Professor, &s.Major, &s.Year, &s.CourseType,
		&s.ProfessorPhone, &s.ProfessorEmail, &s.Office, &s.ConsultationTime, &s.Classroom, &s.Schedule,
		&s.Objectives, &s.Outline, &s.CachedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get syllabus: %w", err)
	}
	return s, nil
}

// GetAllSyllabi retrieves all syllabus records.
// Used to build the vector and BM25 indexes on startup.
func (db *DB) GetAllSyllabi(ctx context.Context) ([]*Syllabus, error) {
	query := `SELECT uid, subject_code, subject_name, class_number, professor, major, year, course_type,
		professor_phone, professor_email, office, consultation_time, classroom, schedule, objectives, outline, cached_at
		FROM syllabi ORDER BY uid`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query syllabi: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var syllabi []*Syllabus
	for rows.Next() {
		s := &Syllabus{}
		if err := rows.Scan(
			&s.UID, &s.SubjectCode, &s.SubjectName, &s.ClassNumber, &s.Professor, &s.Major, &s.Year, &s.CourseType,
			&s.ProfessorPhone, &s.ProfessorEmail, &s.Office, &s.ConsultationTime, &s.Classroom, &s.Schedule,
			&s.Objectives, &s.Outline, &s.CachedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan syllabus: %w", err)
		}
		syllabi = append(syllabi, s)
	}

	return syllabi, rows.Err()
}

// CountSyllabi returns the total number of syllabus records.
func (db *DB) CountSyllabi(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM syllabi`

	var count int
	if err := db.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count syllabi: %w", err)
	}
	return count, nil
}

// execBatch runs fn with a prepared statement inside a single transaction.
func (db *DB) execBatch(ctx context.Context, query string, fn func(stmt *sql.Stmt) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	if err := fn(stmt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
