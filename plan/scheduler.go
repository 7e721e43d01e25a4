package plan

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/shopplan/logger"
	"github.com/teranos/shopplan/sym"
)

// Config tunes one batch run. Zero fields fall back to the defaults.
type Config struct {
	TeamID            string    // team whose calendar governs the run
	TimelineStart     time.Time // overall run start; zero = now
	HorizonDays       int       // earliest-slot search horizon
	StepMinutes       int       // candidate-start step within a day
	MaxPasses         int       // global retry-pass cap for deferred tasks
	ProjectPassBudget int       // per-project retry-pass cap
	AtRiskSlackDays   int       // slack below which a project is at-risk
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TeamID:            "production",
		HorizonDays:       365,
		StepMinutes:       15,
		MaxPasses:         100,
		ProjectPassBudget: 10,
		AtRiskSlackDays:   2,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TeamID == "" {
		c.TeamID = def.TeamID
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = def.HorizonDays
	}
	if c.StepMinutes <= 0 {
		c.StepMinutes = def.StepMinutes
	}
	if c.MaxPasses <= 0 {
		c.MaxPasses = def.MaxPasses
	}
	if c.ProjectPassBudget <= 0 {
		c.ProjectPassBudget = def.ProjectPassBudget
	}
	if c.AtRiskSlackDays <= 0 {
		c.AtRiskSlackDays = def.AtRiskSlackDays
	}
	return c
}

// Scheduler is the top-level driver of the batch computation. It holds
// no run state; every invocation of Run constructs a fresh runState, so
// a Scheduler is safe to reuse across runs.
type Scheduler struct {
	cfg Config
	log *zap.SugaredLogger
}

// NewScheduler creates a scheduler with the given configuration.
func NewScheduler(cfg Config, log *zap.SugaredLogger) *Scheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scheduler{
		cfg: cfg.withDefaults(),
		log: log.With(logger.FieldSymbol, sym.Plan),
	}
}

// Run performs one deterministic full-batch computation over the
// snapshot. A single task's unschedulability never aborts the run; it
// is recorded on the Result. The context is checked at project and
// pass boundaries.
func (s *Scheduler) Run(ctx context.Context, snap *Snapshot) (*Result, error) {
	start := s.cfg.TimelineStart
	if start.IsZero() {
		start = time.Now().Truncate(time.Minute)
	}

	// All searches share one run-global deadline, so commitment
	// preloading and slot placement see the same horizon.
	deadline := start.AddDate(0, 0, s.cfg.HorizonDays)

	cal := NewCalendar(snap.Rules, snap.Holidays)
	state := newRunState()
	runID := uuid.NewString()

	s.log.Infow("Scheduling run started",
		logger.FieldRunID, runID,
		logger.FieldTeamID, s.cfg.TeamID,
		"projects", len(snap.Projects),
		"tasks", len(snap.Tasks),
		"timeline_start", start.Format(time.RFC3339),
	)

	s.preloadCommitments(state, snap.Commitments, start)

	projects := sortedProjects(snap.Projects)
	tasksByProject := groupTasks(snap.Tasks)

	// First pass per project: unconditional tasks, then a bounded
	// per-project retry loop over HOLD tasks.
	var pending []Task
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ready, hold := partitionTasks(tasksByProject[project.ID])

		for _, task := range ready {
			s.scheduleTask(state, cal, snap.Employees, task, start, deadline)
		}

		remaining := hold
		for pass := 0; pass < s.cfg.ProjectPassBudget && len(remaining) > 0; pass++ {
			var progress bool
			remaining, progress = s.holdPass(state, cal, snap, tasksByProject, remaining, start, deadline)
			if !progress {
				break
			}
		}
		pending = append(pending, remaining...)
	}

	// Bounded global retry passes over everything still deferred. Each
	// pass maps the pending set to a smaller one; no shrinkage means no
	// further progress is possible.
	for pass := 0; pass < s.cfg.MaxPasses && len(pending) > 0; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var progress bool
		pending, progress = s.holdPass(state, cal, snap, tasksByProject, pending, start, deadline)
		if !progress {
			break
		}
	}

	for _, task := range pending {
		s.log.Warnw("Task dependency unresolved after retry passes",
			logger.FieldTaskID, task.ID,
			logger.FieldProjectID, task.ProjectID,
		)
		state.warn(task, "limit dependency unresolved after retry passes")
	}

	risks := buildRisks(cal, s.cfg.TeamID, projects, tasksByProject, state.taskEnds, s.cfg.AtRiskSlackDays)

	s.log.Infow("Scheduling run complete",
		logger.FieldRunID, runID,
		"slots", len(state.slots),
		"unschedulable", len(state.warnings),
	)

	return &Result{
		RunID:         runID,
		Slots:         state.slots,
		Unschedulable: state.warnings,
		Risks:         risks,
	}, nil
}

// holdPass attempts every pending HOLD task once: blocked tasks carry
// over to the returned pending set; ready tasks are scheduled (or
// warned as unschedulable) and leave the set either way.
func (s *Scheduler) holdPass(state *runState, cal *Calendar, snap *Snapshot, tasksByProject map[string][]Task, pending []Task, timelineStart, deadline time.Time) ([]Task, bool) {
	var still []Task
	for _, task := range pending {
		res := resolveMinimumStart(task, tasksByProject[task.ProjectID], snap.Limits, state.taskEnds, timelineStart)
		if res.State == ResolutionBlocked {
			still = append(still, task)
			continue
		}

		minStart := res.MinStart
		if minStart.Before(timelineStart) {
			minStart = timelineStart
		}
		s.scheduleTask(state, cal, snap.Employees, task, minStart, deadline)
	}
	return still, len(still) < len(pending)
}

// scheduleTask places one task via the earliest-slot search. On success
// it records the employee reservation, the task end time, and one slot
// per segment. On failure the task is warned and the run continues.
func (s *Scheduler) scheduleTask(state *runState, cal *Calendar, employees []Employee, task Task, minStart, deadline time.Time) bool {
	if task.DurationMinutes <= 0 {
		state.warn(task, "non-positive duration")
		return false
	}

	workstationID := pickWorkstation(task)
	if workstationID == "" {
		state.warn(task, "no eligible workstation")
		return false
	}

	pl, ok := findEarliestSlots(cal, s.cfg.TeamID, task.DurationMinutes, task.SkillID, employees, state.blocks, minStart, deadline, s.cfg.StepMinutes)
	if !ok {
		s.log.Warnw("No feasible slot within horizon",
			logger.FieldTaskID, task.ID,
			logger.FieldProjectID, task.ProjectID,
			"skill_id", task.SkillID,
		)
		state.warn(task, "no feasible employee/time combination within horizon")
		return false
	}

	first := pl.Segments[0].Start
	last := pl.Segments[len(pl.Segments)-1].End

	state.reserve(pl.Employee.ID, first, last)
	state.taskEnds[task.ID] = last

	lane := state.laneIndex(workstationID, pl.Employee.ID)
	for i, seg := range pl.Segments {
		state.slots = append(state.slots, Slot{
			ID:            uuid.NewString(),
			TaskID:        task.ID,
			WorkstationID: workstationID,
			EmployeeID:    pl.Employee.ID,
			EmployeeName:  pl.Employee.Name,
			Date:          midnight(seg.Start),
			Start:         seg.Start,
			End:           seg.End,
			LaneOrdinal:   lane*laneMultiplier + i,
		})
	}

	s.log.Debugw("Task scheduled",
		logger.FieldTaskID, task.ID,
		logger.FieldEmployeeID, pl.Employee.ID,
		logger.FieldWorkstation, workstationID,
		"segments", len(pl.Segments),
		logger.FieldStart, first.Format(time.RFC3339),
		logger.FieldEnd, last.Format(time.RFC3339),
	)
	return true
}

// preloadCommitments expands recurring weekly commitments into employee
// reservations, so task scheduling treats that time as already
// occupied. Coverage runs to twice the horizon: placements start before
// the deadline but their segments may extend past it.
func (s *Scheduler) preloadCommitments(state *runState, commitments []RecurringCommitment, timelineStart time.Time) {
	if len(commitments) == 0 {
		return
	}

	day := midnight(timelineStart)
	end := day.AddDate(0, 0, 2*s.cfg.HorizonDays)
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		for _, c := range commitments {
			if day.Weekday() != c.Weekday {
				continue
			}
			state.reserve(c.EmployeeID,
				day.Add(time.Duration(c.StartMinute)*time.Minute),
				day.Add(time.Duration(c.EndMinute)*time.Minute),
			)
		}
	}
}

// pickWorkstation chooses the task's workstation deterministically: the
// lexicographically smallest eligible id.
func pickWorkstation(task Task) string {
	if len(task.WorkstationIDs) == 0 {
		return ""
	}
	ids := make([]string, len(task.WorkstationIDs))
	copy(ids, task.WorkstationIDs)
	sort.Strings(ids)
	return ids[0]
}

// sortedProjects orders projects by urgency: ascending installation
// date, then id for a deterministic tie-break.
func sortedProjects(projects []Project) []Project {
	sorted := make([]Project, len(projects))
	copy(sorted, projects)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].InstallDate.Equal(sorted[j].InstallDate) {
			return sorted[i].InstallDate.Before(sorted[j].InstallDate)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// groupTasks indexes tasks by project, each group sorted by sequence
// number then id.
func groupTasks(tasks []Task) map[string][]Task {
	grouped := make(map[string][]Task)
	for _, task := range tasks {
		grouped[task.ProjectID] = append(grouped[task.ProjectID], task)
	}
	for projectID := range grouped {
		group := grouped[projectID]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Sequence != group[j].Sequence {
				return group[i].Sequence < group[j].Sequence
			}
			return group[i].ID < group[j].ID
		})
	}
	return grouped
}

// partitionTasks splits a project's tasks into unconditional
// (TODO/IN_PROGRESS) and dependency-gated (HOLD) groups, preserving
// sequence order. Tasks in other states are not scheduled.
func partitionTasks(tasks []Task) (ready, hold []Task) {
	for _, task := range tasks {
		switch task.Status {
		case TaskStatusTodo, TaskStatusInProgress:
			ready = append(ready, task)
		case TaskStatusHold:
			hold = append(hold, task)
		}
	}
	return ready, hold
}
