package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across shopplan.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldRunID       = "run_id"
	FieldProjectID   = "project_id"
	FieldTaskID      = "task_id"
	FieldEmployeeID  = "employee_id"
	FieldTeamID      = "team_id"
	FieldWorkstation = "workstation_id"

	// Components
	FieldComponent = "component"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldStart      = "start"
	FieldEnd        = "end"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount     = "count"
	FieldBatchSize = "batch_size"

	// Symbol marks the owning subsystem of a log line (see package sym)
	FieldSymbol = "symbol"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Scheduler struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewScheduler(...) *Scheduler {
//	    return &Scheduler{log: logger.ComponentLogger("plan.scheduler")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context fields.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
