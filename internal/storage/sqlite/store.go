package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/pkg/errors"
)

// FileName is the database created inside the data directory.
const FileName = "tictoc.db"

// Store implements storage.RunStore for SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates tables if they don't exist
func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			key TEXT NOT NULL,
			command TEXT NOT NULL,
			unit TEXT NOT NULL,
			elapsed INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			exit_code INTEGER NOT NULL,
			error TEXT,
			host TEXT,
			platform TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS runs_key_started ON runs (key, started_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

const runColumns = `id, key, command, unit, elapsed, duration_ns, started_at, finished_at, exit_code, error, host, platform`

func (s *Store) Add(ctx context.Context, run models.Run) error {
	command, err := json.Marshal(run.Command)
	if err != nil {
		return fmt.Errorf("failed to encode command: %w", err)
	}

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		run.ID, run.Key, string(command), run.Unit, run.Elapsed, int64(run.Duration),
		run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(),
		run.ExitCode, run.Error, run.Host, run.Platform)
	if err != nil {
		if existing, _ := s.Get(ctx, run.ID); existing != nil {
			return errors.Newf(errors.ErrConflict, "sqlite.Add", "run %s already recorded", run.ID)
		}
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var (
		r                   models.Run
		command             string
		duration            int64
		started, finished   int64
		runErr, host, platf sql.NullString
	)
	err := row.Scan(&r.ID, &r.Key, &command, &r.Unit, &r.Elapsed, &duration,
		&started, &finished, &r.ExitCode, &runErr, &host, &platf)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(command), &r.Command); err != nil {
		return nil, fmt.Errorf("failed to decode command of run %s: %w", r.ID, err)
	}
	r.Duration = time.Duration(duration)
	r.StartedAt = time.Unix(0, started).UTC()
	r.FinishedAt = time.Unix(0, finished).UTC()
	r.Error = runErr.String
	r.Host = host.String
	r.Platform = platf.String
	return &r, nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	run, err := scanRun(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, storage.ErrRunNotFound("sqlite.Get", id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) List(ctx context.Context, filter storage.Filter) ([]models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if filter.Key != "" {
		query += ` WHERE key = ?`
		args = append(args, filter.Key)
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrRunNotFound("sqlite.Delete", id)
	}
	return nil
}

func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM runs WHERE id NOT IN (
		SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
	)`
	res, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
