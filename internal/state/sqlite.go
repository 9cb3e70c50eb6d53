package state

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the SQLite database at path, creating parent directories as
// needed. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// SaveRun records a completed check invocation.
func (s *SQLiteStore) SaveRun(run Run) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	if run.ID == "" {
		run.ID = generateID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	s.logger.Debug("saving run", slog.String("id", run.ID), slog.Int("failed", run.Failed))

	_, err := s.db.Exec(`
		INSERT INTO runs (id, architecture, total, passed, failed, suppressed, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Architecture, run.Total, run.Passed, run.Failed, run.Suppressed,
		run.StartedAt, run.Duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, architecture, total, passed, failed, suppressed, started_at, duration_ms
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Architecture, &r.Total, &r.Passed, &r.Failed,
			&r.Suppressed, &r.StartedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SaveBaseline replaces the baseline with the given entries.
func (s *SQLiteStore) SaveBaseline(entries []BaselineEntry) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM baseline`); err != nil {
		return fmt.Errorf("failed to clear baseline: %w", err)
	}
	if err := insertBaseline(tx, entries); err != nil {
		return err
	}
	return tx.Commit()
}

// AddBaseline appends entries, ignoring duplicates.
func (s *SQLiteStore) AddBaseline(entries []BaselineEntry) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertBaseline(tx, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func insertBaseline(tx *sql.Tx, entries []BaselineEntry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO baseline (identifier, rule_id, added_at)
		VALUES (?, ?, ?)
		ON CONFLICT (identifier, rule_id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare baseline insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		addedAt := e.AddedAt
		if addedAt.IsZero() {
			addedAt = now
		}
		if _, err := stmt.Exec(e.Identifier, e.RuleID, addedAt); err != nil {
			return fmt.Errorf("failed to insert baseline entry: %w", err)
		}
	}
	return nil
}

// LoadBaseline returns all baseline entries.
func (s *SQLiteStore) LoadBaseline() ([]BaselineEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`
		SELECT identifier, rule_id, added_at FROM baseline ORDER BY identifier, rule_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}
	defer rows.Close()

	var entries []BaselineEntry
	for rows.Next() {
		var e BaselineEntry
		if err := rows.Scan(&e.Identifier, &e.RuleID, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan baseline entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearBaseline removes all baseline entries.
func (s *SQLiteStore) ClearBaseline() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM baseline`); err != nil {
		return fmt.Errorf("failed to clear baseline: %w", err)
	}
	return nil
}
