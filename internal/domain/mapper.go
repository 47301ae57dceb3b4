package domain

import (
	"time"

	"zenith/internal/repository/sqlite"
)

// RunMapper handles conversion between domain and database Run models.
type RunMapper struct{}

// NewRunMapper creates a new RunMapper instance.
func NewRunMapper() *RunMapper {
	return &RunMapper{}
}

// ToDatabase converts a domain Run to a database RunRecord.
func (m *RunMapper) ToDatabase(run Run) sqlite.RunRecord {
	record := sqlite.RunRecord{
		ID:                 run.ID,
		CreatedAt:          run.CreatedAt,
		AutoTasks:          run.AutoTasks,
		ManualTasks:        run.ManualTasks,
		TotalAvailableTime: run.TotalAvailableTime,
		UsedHours:          run.UsedHours,
		TotalProductivity:  run.TotalProductivity,
		Iterations:         run.Iterations,
		Status:             string(run.Status),
		ElapsedMS:          run.Elapsed.Milliseconds(),
	}
	if run.ErrorCode != "" {
		code := run.ErrorCode
		record.ErrorCode = &code
	}
	return record
}

// FromDatabase converts a database RunRecord to a domain Run.
func (m *RunMapper) FromDatabase(record sqlite.RunRecord) Run {
	run := Run{
		ID:                 record.ID,
		CreatedAt:          record.CreatedAt,
		AutoTasks:          record.AutoTasks,
		ManualTasks:        record.ManualTasks,
		TotalAvailableTime: record.TotalAvailableTime,
		UsedHours:          record.UsedHours,
		TotalProductivity:  record.TotalProductivity,
		Iterations:         record.Iterations,
		Status:             RunStatus(record.Status),
		Elapsed:            time.Duration(record.ElapsedMS) * time.Millisecond,
	}
	if record.ErrorCode != nil {
		run.ErrorCode = *record.ErrorCode
	}
	return run
}

// FromDatabaseSlice converts database RunRecords to domain Runs.
func (m *RunMapper) FromDatabaseSlice(records []*sqlite.RunRecord) []Run {
	runs := make([]Run, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		runs = append(runs, m.FromDatabase(*record))
	}
	return runs
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Run *RunMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Run: NewRunMapper(),
	}
}
