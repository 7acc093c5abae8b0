package storage

import "database/sql"

// InitSchema creates the syllabi table if it does not exist.
func InitSchema(conn *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS syllabi (
	uid               TEXT PRIMARY KEY,
	subject_code      TEXT NOT NULL,
	subject_name      TEXT NOT NULL,
	class_number      TEXT NOT NULL DEFAULT '',
	professor         TEXT NOT NULL DEFAULT '',
	major             TEXT NOT NULL DEFAULT '',
	year              TEXT NOT NULL DEFAULT '',
	course_type       TEXT NOT NULL DEFAULT '',
	professor_phone   TEXT NOT NULL DEFAULT '',
	professor_email   TEXT NOT NULL DEFAULT '',
	office            TEXT NOT NULL DEFAULT '',
	consultation_time TEXT NOT NULL DEFAULT '',
	classroom         TEXT NOT NULL DEFAULT '',
	schedule          TEXT NOT NULL DEFAULT '',
	objectives        TEXT NOT NULL DEFAULT '',
	outline           TEXT NOT NULL DEFAULT '',
	cached_at         INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_syllabi_subject_name ON syllabi(subject_name);
CREATE INDEX IF NOT EXISTS idx_syllabi_professor ON syllabi(professor);
`
	_, err := conn.Exec(schema)
	return err
}
