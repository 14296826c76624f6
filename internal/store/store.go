// Package store handles SQLite persistence of attempt history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typeshi/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			at TEXT NOT NULL,
			mode TEXT NOT NULL,
			tier TEXT NOT NULL,
			accuracy_target INTEGER NOT NULL,
			stage INTEGER NOT NULL,
			total INTEGER NOT NULL,
			number INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			sequence TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_at ON attempts(at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_mode ON attempts(mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores one attempt.
func (s *Store) InsertAttempt(ctx context.Context, a model.Attempt) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (run_id, at, mode, tier, accuracy_target, stage, total, number, accuracy, outcome, sequence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.RunID,
		a.At.UTC().Format(timeLayout),
		a.Mode,
		a.Tier,
		a.AccuracyTarget,
		a.Stage,
		a.Total,
		a.Number,
		a.Accuracy,
		a.Outcome,
		a.Sequence,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempts filtered by stats config, oldest first.
func (s *Store) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.Attempt, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, cfg.Mode)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT run_id, at, mode, tier, accuracy_target, stage, total, number, accuracy, outcome, sequence
		FROM attempts
		WHERE %s
		ORDER BY at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var at string
		if err := rows.Scan(&a.RunID, &at, &a.Mode, &a.Tier, &a.AccuracyTarget, &a.Stage, &a.Total, &a.Number, &a.Accuracy, &a.Outcome, &a.Sequence); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, at)
		if err != nil {
			return nil, err
		}
		a.At = parsed
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}
	return attempts, nil
}

// CountRuns returns the number of distinct practice runs, optionally per mode.
func (s *Store) CountRuns(ctx context.Context, mode string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT run_id) FROM attempts WHERE (? = '' OR mode = ?)`,
		mode, mode,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
