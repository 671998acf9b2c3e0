// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records every extraction run, successful or not, in a
// local SQLite database so operators can review what was produced and
// when.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/peptide-report/pkg/types"
)

const (
	dbFile       = "runs.db"
	defaultLimit = 20

	// timeLayout is fixed-width so created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Store manages the run ledger database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates the ledger at dir/runs.db and creates the schema
// if it does not exist.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("ledger directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string {
	return s.dir
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			order_number TEXT NOT NULL,
			sample_name TEXT NOT NULL,
			report_dir TEXT NOT NULL,
			scratch_dir TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL,
			context TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_order ON runs(order_number)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// NewRecord describes the outcome of one run. rc is nil when runErr is set.
func NewRecord(in types.ReportInput, scratchDir string, rc *types.ReportContext, runErr error) types.RunRecord {
	r := types.RunRecord{
		OrderNumber: in.OrderNumber,
		SampleName:  in.SampleName,
		ReportDir:   in.ReportDir,
		ScratchDir:  scratchDir,
		Status:      types.RunSucceeded,
	}
	if runErr != nil {
		r.Status = types.RunFailed
		r.Error = runErr.Error()
	} else if rc != nil {
		r.Context = rc.Fields()
	}
	return r
}

// Record inserts r, assigning an ID and timestamp when they are unset. It
// returns the stored record.
func (s *Store) Record(ctx context.Context, r types.RunRecord) (types.RunRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	var contextJSON sql.NullString
	if r.Context != nil {
		data, err := json.Marshal(r.Context)
		if err != nil {
			return r, fmt.Errorf("marshaling run context: %w", err)
		}
		contextJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, order_number, sample_name, report_dir, scratch_dir, status, error, created_at, context)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.OrderNumber, r.SampleName, r.ReportDir, r.ScratchDir,
		string(r.Status), r.Error, r.CreatedAt.Format(timeLayout), contextJSON,
	)
	if err != nil {
		return r, fmt.Errorf("inserting run %s: %w", r.ID, err)
	}
	return r, nil
}

const selectColumns = `id, order_number, sample_name, report_dir, scratch_dir, status, error, created_at, context`

// List returns the most recent runs, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.query(ctx, `SELECT `+selectColumns+` FROM runs ORDER BY created_at DESC, seq DESC LIMIT ?`, limit)
}

// All returns every run, oldest first.
func (s *Store) All(ctx context.Context) ([]types.RunRecord, error) {
	return s.query(ctx, `SELECT `+selectColumns+` FROM runs ORDER BY created_at, seq`)
}

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.RunRecord, error) {
	runs, err := s.query(ctx, `SELECT `+selectColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return types.RunRecord{}, err
	}
	if len(runs) == 0 {
		return types.RunRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return runs[0], nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []types.RunRecord{}
	for rows.Next() {
		var (
			r           types.RunRecord
			status      string
			runErr      sql.NullString
			createdAt   string
			contextJSON sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.OrderNumber, &r.SampleName, &r.ReportDir, &r.ScratchDir,
			&status, &runErr, &createdAt, &contextJSON); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Status = types.RunStatus(status)
		r.Error = runErr.String
		if r.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of run %s: %w", r.ID, err)
		}
		if contextJSON.Valid && contextJSON.String != "" {
			if err := json.Unmarshal([]byte(contextJSON.String), &r.Context); err != nil {
				return nil, fmt.Errorf("parsing context of run %s: %w", r.ID, err)
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
