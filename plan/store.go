package plan

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/shopplan/errors"
	"github.com/teranos/shopplan/logger"
	"github.com/teranos/shopplan/sym"
)

const (
	dateFormat = "2006-01-02"

	// defaultInsertBatchSize bounds one multi-row INSERT in the writer.
	defaultInsertBatchSize = 100
)

// Store handles persistence for the scheduling engine: the read-only
// reference snapshot consumed at run start and the full-replace write
// of schedule slots at run end.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewStore creates a plan store. A nil logger disables store logging.
func NewStore(db *sql.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{db: db, log: log.With(logger.FieldSymbol, sym.DB)}
}

// LoadSnapshot reads the full reference snapshot in one pass. Any
// failure aborts the run before scheduling begins.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Limits: make(map[string][]string)}

	if err := s.loadProjects(ctx, snap); err != nil {
		return nil, errors.Wrap(err, "load projects")
	}
	if err := s.loadTasks(ctx, snap); err != nil {
		return nil, errors.Wrap(err, "load tasks")
	}
	if err := s.loadEmployees(ctx, snap); err != nil {
		return nil, errors.Wrap(err, "load employees")
	}
	if err := s.loadLimits(ctx, snap); err != nil {
		return nil, errors.Wrap(err, "load limit dependencies")
	}
	if err := s.loadCalendar(ctx, snap); err != nil {
		return nil, errors.Wrap(err, "load calendar")
	}
	if err := s.loadCommitments(ctx, snap); err != nil {
		return nil, errors.Wrap(err, "load recurring commitments")
	}

	s.log.Debugw("Snapshot loaded",
		"projects", len(snap.Projects),
		"tasks", len(snap.Tasks),
		"employees", len(snap.Employees),
	)
	return snap, nil
}

func (s *Store) loadProjects(ctx context.Context, snap *Snapshot) error {
	// Filtered upstream semantics: active projects with a
	// future-or-current installation date.
	query := `
		SELECT id, name, client, install_date, status
		FROM projects
		WHERE status IN ('planned', 'in-progress') AND install_date >= date('now')
		ORDER BY install_date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p Project
		var installDate string
		if err := rows.Scan(&p.ID, &p.Name, &p.Client, &installDate, &p.Status); err != nil {
			return err
		}
		p.InstallDate, err = time.ParseInLocation(dateFormat, installDate, time.UTC)
		if err != nil {
			return errors.Wrapf(err, "parse install_date for project %s", p.ID)
		}
		snap.Projects = append(snap.Projects, p)
	}
	return rows.Err()
}

func (s *Store) loadTasks(ctx context.Context, snap *Snapshot) error {
	projectIDs := make(map[string]bool, len(snap.Projects))
	for _, p := range snap.Projects {
		projectIDs[p.ID] = true
	}

	query := `
		SELECT id, title, duration_minutes, status, skill_id, project_id, sequence
		FROM tasks
		ORDER BY project_id ASC, sequence ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t Task
		var skillID sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.DurationMinutes, &t.Status, &skillID, &t.ProjectID, &t.Sequence); err != nil {
			return err
		}
		if skillID.Valid {
			t.SkillID = skillID.String
		}
		// Tasks of projects filtered out of the snapshot are not scheduled.
		if !projectIDs[t.ProjectID] {
			continue
		}
		snap.Tasks = append(snap.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return s.loadTaskWorkstations(ctx, snap)
}

func (s *Store) loadTaskWorkstations(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, workstation_id
		FROM task_workstations
		ORDER BY task_id ASC, workstation_id ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	byTask := make(map[string][]string)
	for rows.Next() {
		var taskID, workstationID string
		if err := rows.Scan(&taskID, &workstationID); err != nil {
			return err
		}
		byTask[taskID] = append(byTask[taskID], workstationID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range snap.Tasks {
		snap.Tasks[i].WorkstationIDs = byTask[snap.Tasks[i].ID]
	}
	return nil
}

func (s *Store) loadEmployees(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM employees ORDER BY id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return err
		}
		e.Skills = make(map[string]bool)
		index[e.ID] = len(snap.Employees)
		snap.Employees = append(snap.Employees, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	skillRows, err := s.db.QueryContext(ctx, `SELECT employee_id, skill_id FROM employee_skills`)
	if err != nil {
		return err
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var employeeID, skillID string
		if err := skillRows.Scan(&employeeID, &skillID); err != nil {
			return err
		}
		if i, ok := index[employeeID]; ok {
			snap.Employees[i].Skills[skillID] = true
		}
	}
	return skillRows.Err()
}

func (s *Store) loadLimits(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT skill_id, prerequisite_skill_id
		FROM limit_dependencies
		ORDER BY skill_id ASC, prerequisite_skill_id ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var skillID, prereqID string
		if err := rows.Scan(&skillID, &prereqID); err != nil {
			return err
		}
		snap.Limits[skillID] = append(snap.Limits[skillID], prereqID)
	}
	return rows.Err()
}

func (s *Store) loadCalendar(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, weekday, start_minute, end_minute, active
		FROM working_hours_rules
		ORDER BY team_id ASC, weekday ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	ruleIndex := make(map[int64]int)
	for rows.Next() {
		var rule WorkingHoursRule
		var id int64
		var weekday int
		if err := rows.Scan(&id, &rule.TeamID, &weekday, &rule.StartMinute, &rule.EndMinute, &rule.Active); err != nil {
			return err
		}
		rule.Weekday = time.Weekday(weekday)
		ruleIndex[id] = len(snap.Rules)
		snap.Rules = append(snap.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	breakRows, err := s.db.QueryContext(ctx, `
		SELECT rule_id, start_minute, end_minute
		FROM rule_breaks
		ORDER BY rule_id ASC, start_minute ASC
	`)
	if err != nil {
		return err
	}
	defer breakRows.Close()

	for breakRows.Next() {
		var ruleID int64
		var br BreakWindow
		if err := breakRows.Scan(&ruleID, &br.StartMinute, &br.EndMinute); err != nil {
			return err
		}
		if i, ok := ruleIndex[ruleID]; ok {
			snap.Rules[i].Breaks = append(snap.Rules[i].Breaks, br)
		}
	}
	if err := breakRows.Err(); err != nil {
		return err
	}

	holidayRows, err := s.db.QueryContext(ctx, `SELECT team_id, date FROM holidays ORDER BY team_id ASC, date ASC`)
	if err != nil {
		return err
	}
	defer holidayRows.Close()

	for holidayRows.Next() {
		var h Holiday
		var date string
		if err := holidayRows.Scan(&h.TeamID, &date); err != nil {
			return err
		}
		h.Date, err = time.ParseInLocation(dateFormat, date, time.UTC)
		if err != nil {
			return errors.Wrapf(err, "parse holiday date %q", date)
		}
		snap.Holidays = append(snap.Holidays, h)
	}
	return holidayRows.Err()
}

func (s *Store) loadCommitments(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, weekday, start_minute, end_minute
		FROM recurring_commitments
		ORDER BY employee_id ASC, weekday ASC, start_minute ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c RecurringCommitment
		var weekday int
		if err := rows.Scan(&c.EmployeeID, &weekday, &c.StartMinute, &c.EndMinute); err != nil {
			return err
		}
		c.Weekday = time.Weekday(weekday)
		snap.Commitments = append(snap.Commitments, c)
	}
	return rows.Err()
}

// ReplaceSlots commits a run's output: a full delete of the prior
// result set followed by batched inserts of the new one, in a single
// transaction. A failed batch aborts the write with an error naming the
// batch ordinal; the rollback leaves the prior result set authoritative.
func (s *Store) ReplaceSlots(ctx context.Context, slots []Slot, batchSize int) error {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "begin replace transaction"), errors.ErrPersistFailed)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_slots`); err != nil {
		tx.Rollback()
		return errors.Mark(errors.Wrap(err, "delete prior schedule"), errors.ErrPersistFailed)
	}

	for batchStart := 0; batchStart < len(slots); batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > len(slots) {
			batchEnd = len(slots)
		}
		batch := slots[batchStart:batchEnd]

		query, args := buildSlotInsert(batch)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return errors.Mark(
				errors.Wrapf(err, "insert slot batch %d (%d slots)", batchStart/batchSize+1, len(batch)),
				errors.ErrPersistFailed,
			)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Mark(errors.Wrap(err, "commit replace transaction"), errors.ErrPersistFailed)
	}

	s.log.Infow("Schedule replaced", "slots", len(slots))
	return nil
}

// buildSlotInsert renders one multi-row INSERT for a batch of slots.
func buildSlotInsert(batch []Slot) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO schedule_slots (id, task_id, workstation_id, employee_id, employee_name, date, start_at, end_at, lane_ordinal) VALUES `)

	args := make([]interface{}, 0, len(batch)*9)
	for i, slot := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			slot.ID,
			slot.TaskID,
			slot.WorkstationID,
			slot.EmployeeID,
			slot.EmployeeName,
			slot.Date.Format(dateFormat),
			slot.Start.Format(time.RFC3339),
			slot.End.Format(time.RFC3339),
			slot.LaneOrdinal,
		)
	}
	return sb.String(), args
}
