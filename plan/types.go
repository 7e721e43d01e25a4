// Package plan implements the batch scheduling engine for the shop
// floor: it assigns pending production tasks to qualified employees and
// workstations across a multi-day calendar, respecting working-hour
// windows, rest breaks, holidays, skill eligibility, and cross-task
// limit dependencies. One invocation performs one deterministic
// full-batch computation whose output replaces the prior schedule
// wholesale.
package plan

import "time"

// TaskStatus is the lifecycle state of a production task.
type TaskStatus string

const (
	// TaskStatusTodo tasks are scheduled unconditionally, subject to capacity
	TaskStatusTodo TaskStatus = "TODO"
	// TaskStatusInProgress tasks are treated like TODO tasks
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	// TaskStatusHold tasks are additionally gated by limit-dependency resolution
	TaskStatusHold TaskStatus = "HOLD"
)

// BreakWindow is a rest break inside a working day, in minutes from midnight.
type BreakWindow struct {
	StartMinute int
	EndMinute   int
}

// WorkingHoursRule defines the working window for one team on one
// weekday. Reference data, loaded read-only per run.
type WorkingHoursRule struct {
	TeamID      string
	Weekday     time.Weekday
	StartMinute int // minutes from midnight
	EndMinute   int
	Breaks      []BreakWindow
	Active      bool
}

// Holiday marks a date as non-working for a team regardless of weekday.
type Holiday struct {
	TeamID string
	Date   time.Time // midnight, date component only
}

// Project drives scheduling priority by ascending installation date.
type Project struct {
	ID          string
	Name        string
	Client      string
	InstallDate time.Time
	Status      string
}

// Task is one unit of pending production work.
type Task struct {
	ID              string
	Title           string
	DurationMinutes int
	Status          TaskStatus
	SkillID         string // empty = no skill requirement
	ProjectID       string
	Sequence        int
	WorkstationIDs  []string
}

// Employee with the set of skills they may perform.
type Employee struct {
	ID     string
	Name   string
	Skills map[string]bool
}

// TimeBlock is a run-local reservation preventing double-booking of an
// employee. Never shared across runs.
type TimeBlock struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
}

// RecurringCommitment is a fixed weekly reservation for an employee,
// pre-loaded as occupied time before task scheduling begins.
type RecurringCommitment struct {
	EmployeeID  string
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
}

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval length in whole minutes.
func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Slot is one scheduled segment of a task: one employee on one
// workstation for one contiguous working period. The full slot set of a
// run is the engine's sole persisted artifact.
type Slot struct {
	ID            string
	TaskID        string
	WorkstationID string
	EmployeeID    string
	EmployeeName  string
	Date          time.Time // midnight of the segment's calendar date
	Start         time.Time
	End           time.Time
	LaneOrdinal   int // laneIndex*laneMultiplier + segment ordinal
}

// Snapshot is the read-only input of one run.
type Snapshot struct {
	Projects    []Project
	Tasks       []Task
	Employees   []Employee
	Limits      map[string][]string // skill -> prerequisite skills
	Rules       []WorkingHoursRule
	Holidays    []Holiday
	Commitments []RecurringCommitment
}

// TaskWarning records a task the run could not schedule, with the reason.
type TaskWarning struct {
	TaskID    string
	ProjectID string
	Title     string
	Reason    string
}

// RiskStatus classifies a project's completion risk.
type RiskStatus string

const (
	RiskOnTrack RiskStatus = "on-track"
	RiskAtRisk  RiskStatus = "at-risk"
	RiskOverdue RiskStatus = "overdue"
	RiskPending RiskStatus = "pending"
)

// ProjectRisk compares a project's final production step against its
// installation date.
type ProjectRisk struct {
	ProjectID    string
	ProjectName  string
	Status       RiskStatus
	SlackDays    int       // days between final task end and install date
	FinalTaskEnd time.Time // zero when Status is RiskPending
}

// Result is the outcome of one batch run.
type Result struct {
	RunID         string
	Slots         []Slot
	Unschedulable []TaskWarning
	Risks         []ProjectRisk
}
