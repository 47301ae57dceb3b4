// Package sqlite stores the audit log of planning runs. Only run metadata is
// written; schedules are never persisted.
package sqlite

import (
	"context"
	"database/sql"

	apperrors "zenith/internal/errors"
	"zenith/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for run audit storage
type Repository interface {
	RecordRun(ctx context.Context, run *RunRecord) error
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]*RunRecord, error)
	PruneRuns(ctx context.Context, keep int) (int64, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens the database at dbPath and applies pending migrations.
// ":memory:" gives a private in-memory database.
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewDatabaseError("open database", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// RecordRun inserts a run and sets its Seq.
func (r *SQLiteRepository) RecordRun(ctx context.Context, run *RunRecord) error {
	query := `
	INSERT INTO runs (id, created_at, auto_tasks, manual_tasks, total_available_time,
		used_hours, total_productivity, iterations, status, error_code, elapsed_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var errorCode interface{}
	if run.ErrorCode != nil {
		errorCode = NullableString(*run.ErrorCode)
	}

	seq, err := ExecuteWithLastInsertID(ctx, r.db, query,
		run.ID,
		FormatTimeForDB(run.CreatedAt),
		run.AutoTasks,
		run.ManualTasks,
		run.TotalAvailableTime,
		run.UsedHours,
		run.TotalProductivity,
		run.Iterations,
		run.Status,
		errorCode,
		run.ElapsedMS,
	)
	if err != nil {
		return err
	}

	run.Seq = seq
	return nil
}

// GetRun retrieves a run by its id
func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanRun, "run", id, id)
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		return QueryMultiple(ctx, r.db, query, ScanRuns, "runs", limit)
	}
	return QueryMultiple(ctx, r.db, query, ScanRuns, "runs")
}

// PruneRuns deletes all but the newest keep runs and returns how many were removed.
func (r *SQLiteRepository) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `
	DELETE FROM runs
	WHERE seq NOT IN (SELECT seq FROM runs ORDER BY seq DESC LIMIT ?)`

	return ExecuteWithRowsAffected(ctx, r.db, query, keep)
}
