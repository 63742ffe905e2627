// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists pipeline runs and their fiber-count records in
// a SQLite database so a researcher can compare counts across re-runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tract-engine/pkg/types"
)

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// RunRecord summarizes one pipeline run.
type RunRecord struct {
	ID         string
	SubjectDir string
	StartedAt  time.Time
	FinishedAt time.Time
	Failures   int
}

// Open opens or creates the history database at dbPath, creating the
// schema if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			subject_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			failures INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS counts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			fiber_count INTEGER,
			status TEXT NOT NULL,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_counts_run_id ON counts(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a run and its fiber-count records in one transaction.
// Record position preserves report ordering.
func (s *Store) RecordRun(ctx context.Context, run RunRecord, counts []types.FiberCount) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, subject_dir, started_at, finished_at, failures)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.SubjectDir,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Failures,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	for i, c := range counts {
		var count sql.NullInt64
		if c.Known() {
			count = sql.NullInt64{Int64: *c.Count, Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO counts (run_id, position, label, fiber_count, status, reason)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, c.Label, count, string(c.Status), c.Reason,
		)
		if err != nil {
			return fmt.Errorf("inserting count %s: %w", c.Label, err)
		}
	}

	return tx.Commit()
}

// Runs returns the most recent runs, newest first. A limit of 0 means all.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, subject_dir, started_at, finished_at, failures
	          FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var started, finished string
		if err := rows.Scan(&r.ID, &r.SubjectDir, &started, &finished, &r.Failures); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing run %s start time: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing run %s finish time: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Counts returns a run's fiber-count records in report order.
func (s *Store) Counts(ctx context.Context, runID string) ([]types.FiberCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, fiber_count, status, reason
		 FROM counts WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying counts for run %s: %w", runID, err)
	}
	defer rows.Close()

	var counts []types.FiberCount
	for rows.Next() {
		var c types.FiberCount
		var n sql.NullInt64
		var status string
		if err := rows.Scan(&c.Label, &n, &status, &c.Reason); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		c.Status = types.CountStatus(status)
		if n.Valid {
			c.Count = &n.Int64
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
