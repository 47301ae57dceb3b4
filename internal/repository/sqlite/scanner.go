package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// runColumns lists the columns ScanRun expects, in order.
const runColumns = `seq, id, created_at, auto_tasks, manual_tasks, total_available_time,
	used_hours, total_productivity, iterations, status, error_code, elapsed_ms`

// ScanRun scans a single run from a database row
func ScanRun(scanner Scanner) (*RunRecord, error) {
	run := &RunRecord{}
	var createdAt string
	var errorCode sql.NullString

	err := scanner.Scan(
		&run.Seq,
		&run.ID,
		&createdAt,
		&run.AutoTasks,
		&run.ManualTasks,
		&run.TotalAvailableTime,
		&run.UsedHours,
		&run.TotalProductivity,
		&run.Iterations,
		&run.Status,
		&errorCode,
		&run.ElapsedMS,
	)
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if errorCode.Valid {
		run.ErrorCode = &errorCode.String
	}

	return run, nil
}

// ScanRuns scans multiple runs from database rows
func ScanRuns(rows Rows) ([]*RunRecord, error) {
	var runs []*RunRecord
	for rows.Next() {
		run, err := ScanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
