package scheduler

import (
	"github.com/arcadia-advisors/intake/internal/database"
	"github.com/arcadia-advisors/intake/internal/modules/household"
)

// CheckpointJob persists the household snapshot on a fixed schedule as a
// safety net behind the debounced autosave.
type CheckpointJob struct {
	Service *household.Service
}

// Name returns the job name
func (j *CheckpointJob) Name() string { return "snapshot_checkpoint" }

// Run saves the current household snapshot
func (j *CheckpointJob) Run() error {
	return j.Service.Save()
}

// WALMaintenanceJob truncates the SQLite WAL file to keep it from growing
// across a long-lived session.
type WALMaintenanceJob struct {
	DB *database.DB
}

// Name returns the job name
func (j *WALMaintenanceJob) Name() string { return "wal_maintenance" }

// Run checkpoints the WAL
func (j *WALMaintenanceJob) Run() error {
	return j.DB.WALCheckpoint("TRUNCATE")
}
