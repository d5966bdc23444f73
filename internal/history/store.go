package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"scrub/internal/config"
	"scrub/internal/manifest"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    label TEXT NOT NULL DEFAULT '',
    source_dir TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    ok_count INTEGER NOT NULL,
    skipped_count INTEGER NOT NULL,
    failed_count INTEGER NOT NULL,
    residual_tag_warning INTEGER NOT NULL DEFAULT 0,
    manifest_path TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_outputs (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source TEXT NOT NULL,
    format TEXT NOT NULL,
    status TEXT NOT NULL,
    dest TEXT NOT NULL DEFAULT '',
    diagnostic TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_run_outputs_run_id ON run_outputs(run_id);
`

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Run is one recorded batch run.
type Run struct {
	ID                 string
	Label              string
	SourceDir          string
	OutputDir          string
	StartedAt          time.Time
	FinishedAt         time.Time
	OK                 int
	Skipped            int
	Failed             int
	ResidualTagWarning bool
	ManifestPath       string
}

// RecordRun stores a finalized manifest as one run plus its output rows.
func (s *Store) RecordRun(ctx context.Context, m *manifest.Manifest, manifestPath string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, label, source_dir, output_dir, started_at, finished_at,
            ok_count, skipped_count, failed_count, residual_tag_warning, manifest_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID,
		m.Label,
		m.SourceDir,
		m.OutputDir,
		m.StartedAt.Format(time.RFC3339Nano),
		m.FinishedAt.Format(time.RFC3339Nano),
		m.Summary.OK,
		m.Summary.Skipped,
		m.Summary.Failed,
		boolToInt(m.ResidualTagWarning),
		manifestPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range m.Files {
		for _, output := range file.Outputs {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO run_outputs (run_id, source, format, status, dest, diagnostic)
                 VALUES (?, ?, ?, ?, ?, ?)`,
				m.RunID, file.Source, output.Format, string(output.Status), output.Dest, output.Diagnostic,
			)
			if err != nil {
				return fmt.Errorf("insert run output: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, source_dir, output_dir, started_at, finished_at,
                ok_count, skipped_count, failed_count, residual_tag_warning, manifest_path
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		var warning int
		if err := rows.Scan(
			&run.ID, &run.Label, &run.SourceDir, &run.OutputDir, &started, &finished,
			&run.OK, &run.Skipped, &run.Failed, &warning, &run.ManifestPath,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		run.ResidualTagWarning = warning != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
