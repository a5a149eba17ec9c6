// Package store persists extraction runs and per-slice outcomes in a
// SQLite database so batch results can be audited and served later.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/contour.report/internal/contour"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SliceStatus records the outcome of one slice of a run.
type SliceStatus string

const (
	StatusWritten       SliceStatus = "written"
	StatusSkippedExists SliceStatus = "skipped_exists"
	StatusSkippedEmpty  SliceStatus = "skipped_empty"
	StatusFailed        SliceStatus = "failed"
)

// Run is one invocation of the extraction pipeline.
type Run struct {
	ID        string
	Input     string
	Dimension int
	GapLimit  float64
	Divider   int
	StartedAt time.Time
}

// SliceRecord is the stored outcome of a single slice.
type SliceRecord struct {
	RunID     string
	SliceIdx  int
	Status    SliceStatus
	Points    int
	Perimeter float64
	File      string
}

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the results database at path and
// applies any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	drv, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("migration setup: %w", err)
	}
	// Not closing m: that would close the shared DB connection.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for the debug SQL UI.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateRun inserts a new run record and returns it with a fresh UUID.
func (s *Store) CreateRun(input string, dimension int, p contour.Params) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Input:     input,
		Dimension: dimension,
		GapLimit:  p.GapLimit,
		Divider:   p.Divider,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, input, dimension, gap_limit, divider, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Dimension, run.GapLimit, run.Divider, run.StartedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordSlice upserts the outcome of one slice of a run.
func (s *Store) RecordSlice(rec SliceRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO slices (run_id, slice_idx, status, points, perimeter, file)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, slice_idx) DO UPDATE SET
		   status = excluded.status,
		   points = excluded.points,
		   perimeter = excluded.perimeter,
		   file = excluded.file`,
		rec.RunID, rec.SliceIdx, string(rec.Status), rec.Points, rec.Perimeter, rec.File,
	)
	if err != nil {
		return fmt.Errorf("record slice %d: %w", rec.SliceIdx, err)
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, input, dimension, gap_limit, divider, started_at
		 FROM runs ORDER BY started_at DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Input, &r.Dimension, &r.GapLimit, &r.Divider, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunSlices returns the slice records of a run in slice order.
func (s *Store) RunSlices(runID string) ([]SliceRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, slice_idx, status, points, perimeter, COALESCE(file, '')
		 FROM slices WHERE run_id = ? ORDER BY slice_idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("list slices: %w", err)
	}
	defer rows.Close()

	var recs []SliceRecord
	for rows.Next() {
		var rec SliceRecord
		var status string
		if err := rows.Scan(&rec.RunID, &rec.SliceIdx, &status, &rec.Points, &rec.Perimeter, &rec.File); err != nil {
			return nil, fmt.Errorf("scan slice: %w", err)
		}
		rec.Status = SliceStatus(status)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
