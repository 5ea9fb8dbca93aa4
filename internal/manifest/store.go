package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages run manifest persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded generation run.
type Run struct {
	ID                     string
	CreatedAt              time.Time
	Seed                   int64
	Repeats                int
	CategoriesPerCondition int
	IdentityItems          int
	CategoryItems          int
	Conditions             int
	TotalTrials            int
	OutputDir              string
	Files                  []File
}

// File is one trial list written during a run.
type File struct {
	Condition int
	Path      string
	Trials    int
	SHA256    string
}

// Open initializes or connects to the manifest database and applies
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordRun persists a completed run and its files in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("record run: missing run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, created_at, seed, repeats, categories_per_condition,
            identity_items, category_items, conditions, total_trials, output_dir
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		createdAt.UTC().Format(time.RFC3339Nano),
		run.Seed,
		run.Repeats,
		run.CategoriesPerCondition,
		run.IdentityItems,
		run.CategoryItems,
		run.Conditions,
		run.TotalTrials,
		run.OutputDir,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range run.Files {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, condition, path, trials, sha256)
             VALUES (?, ?, ?, ?, ?)`,
			run.ID,
			file.Condition,
			file.Path,
			file.Trials,
			file.SHA256,
		); err != nil {
			return fmt.Errorf("insert run file %d: %w", file.Condition, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, with their files
// loaded. limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, seed, repeats, categories_per_condition,
        identity_items, category_items, conditions, total_trials, output_dir
        FROM runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.ID, &createdAt, &run.Seed, &run.Repeats,
			&run.CategoriesPerCondition, &run.IdentityItems, &run.CategoryItems,
			&run.Conditions, &run.TotalTrials, &run.OutputDir,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			run.CreatedAt = parsed
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		files, err := s.runFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

func (s *Store) runFiles(ctx context.Context, runID string) ([]File, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT condition, path, trials, sha256 FROM run_files
         WHERE run_id = ? ORDER BY condition`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var file File
		if err := rows.Scan(&file.Condition, &file.Path, &file.Trials, &file.SHA256); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		files = append(files, file)
	}
	return files, rows.Err()
}
