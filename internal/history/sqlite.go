package history

import (
	"database/sql"
	"fmt"

	"github.com/MichonGoddijn231849/emolens/internal/logging"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// SQLStore is the durable archive backed by SQLite.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (or creates) the archive database at path and applies
// migrations.
func NewSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps reads cheap while the UI loop writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &SQLStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Open returns the SQLite archive at path, degrading to an in-memory
// archive when the backing file is unreadable or corrupt. The degraded
// store works for the rest of the session; nothing it records survives a
// restart. Callers never see the failure.
func Open(path string) Store {
	s, err := NewSQLStore(path)
	if err != nil {
		logging.Warn("History archive unavailable, continuing in-memory", "path", path, "error", err)
		return NewMemStore()
	}
	return s
}

func (s *SQLStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		source_ref TEXT NOT NULL,
		plan TEXT NOT NULL,
		artifact_ref TEXT NOT NULL,
		feedback_submitted INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_artifact ON runs(artifact_ref);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts an entry and evicts the oldest rows past MaxEntries in
// the same transaction, so the cap holds even if the process dies between
// the two statements.
func (s *SQLStore) Append(e Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, source_ref, plan, artifact_ref, feedback_submitted)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.CreatedAt, e.SourceRef, e.Plan, e.ArtifactRef, boolToInt(e.FeedbackSubmitted))
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, MaxEntries)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// List returns all entries, most recent first.
func (s *SQLStore) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, source_ref, plan, artifact_ref, feedback_submitted
		FROM runs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var submitted int
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.SourceRef, &e.Plan, &e.ArtifactRef, &submitted); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		e.FeedbackSubmitted = submitted != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get looks an entry up by artifact reference.
func (s *SQLStore) Get(artifactRef string) (Entry, bool, error) {
	var e Entry
	var submitted int
	err := s.db.QueryRow(`
		SELECT id, created_at, source_ref, plan, artifact_ref, feedback_submitted
		FROM runs WHERE artifact_ref = ?
	`, artifactRef).Scan(&e.ID, &e.CreatedAt, &e.SourceRef, &e.Plan, &e.ArtifactRef, &submitted)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e.FeedbackSubmitted = submitted != 0
	return e, true, nil
}

// Remove deletes one entry.
func (s *SQLStore) Remove(id string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	return err
}

// Clear empties the archive.
func (s *SQLStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// MarkFeedbackSubmitted flips the submitted flag. Monotonic: the statement
// only ever sets the flag, never clears it.
func (s *SQLStore) MarkFeedbackSubmitted(artifactRef string) error {
	_, err := s.db.Exec("UPDATE runs SET feedback_submitted = 1 WHERE artifact_ref = ?", artifactRef)
	return err
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
