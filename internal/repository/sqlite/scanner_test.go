package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}

	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}

	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = ts.data[i].(int64)
		case *int:
			*v = ts.data[i].(int)
		case *float64:
			*v = ts.data[i].(float64)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}

	return nil
}

// TestRows implements the Rows interface for testing
type TestRows struct {
	rows  [][]interface{}
	index int
	err   error
}

func (tr *TestRows) Next() bool {
	tr.index++
	return tr.index <= len(tr.rows)
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return (&TestScanner{data: tr.rows[tr.index-1]}).Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func runRow(seq int64, id, createdAt string, errorCode sql.NullString) []interface{} {
	return []interface{}{
		seq, id, createdAt, 2, 1, 8.0, 5.5, 9.75, 12, "succeeded", errorCode, int64(3),
	}
}

func TestScanRun(t *testing.T) {
	tests := []struct {
		name        string
		scanner     *TestScanner
		wantCode    *string
		expectError bool
	}{
		{
			name:    "successful run",
			scanner: &TestScanner{data: runRow(1, "a", "2024-01-15T10:00:00.000000000Z", sql.NullString{})},
		},
		{
			name:     "failed run keeps error code",
			scanner:  &TestScanner{data: runRow(2, "b", "2024-01-15T10:00:00.000000000Z", sql.NullString{String: "SCHEDULING_CONFLICT", Valid: true})},
			wantCode: func() *string { s := "SCHEDULING_CONFLICT"; return &s }(),
		},
		{
			name:        "bad timestamp",
			scanner:     &TestScanner{data: runRow(3, "c", "not a time", sql.NullString{})},
			expectError: true,
		},
		{
			name:        "scan error",
			scanner:     &TestScanner{err: sql.ErrNoRows},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := ScanRun(tt.scanner)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, run)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, run.AutoTasks)
			assert.Equal(t, 1, run.ManualTasks)
			assert.Equal(t, 12, run.Iterations)
			assert.True(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC).Equal(run.CreatedAt))
			assert.Equal(t, tt.wantCode, run.ErrorCode)
		})
	}
}

func TestScanRuns(t *testing.T) {
	rows := &TestRows{rows: [][]interface{}{
		runRow(2, "b", "2024-01-15T11:00:00.000000000Z", sql.NullString{}),
		runRow(1, "a", "2024-01-15T10:00:00.000000000Z", sql.NullString{}),
	}}

	runs, err := ScanRuns(rows)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, "a", runs[1].ID)
}

func TestScanRuns_RowsError(t *testing.T) {
	rows := &TestRows{err: errors.New("cursor closed")}

	runs, err := ScanRuns(rows)
	assert.EqualError(t, err, "cursor closed")
	assert.Nil(t, runs)
}
