package plan

import "time"

// laneMultiplier spaces slot ordinals so that multiple segments of the
// same task at the same lane remain distinguishable in storage.
const laneMultiplier = 100

type laneKey struct {
	workstationID string
	employeeID    string
}

// runState is the run-local mutable state of one batch computation:
// employee reservations, scheduled task end times, lane assignments and
// accumulated output. A fresh value is constructed per invocation, so
// runs never contaminate each other.
type runState struct {
	blocks   map[string][]TimeBlock
	taskEnds map[string]time.Time
	lanes    map[laneKey]int
	nextLane map[string]int
	slots    []Slot
	warnings []TaskWarning
}

func newRunState() *runState {
	return &runState{
		blocks:   make(map[string][]TimeBlock),
		taskEnds: make(map[string]time.Time),
		lanes:    make(map[laneKey]int),
		nextLane: make(map[string]int),
	}
}

// reserve records an employee time block for the rest of the run.
func (s *runState) reserve(employeeID string, start, end time.Time) {
	s.blocks[employeeID] = append(s.blocks[employeeID], TimeBlock{
		EmployeeID: employeeID,
		Start:      start,
		End:        end,
	})
}

// laneIndex returns the stable lane for a (workstation, employee) pair,
// assigning the next free index per workstation the first time a pair
// is seen within the run.
func (s *runState) laneIndex(workstationID, employeeID string) int {
	key := laneKey{workstationID, employeeID}
	if lane, ok := s.lanes[key]; ok {
		return lane
	}
	lane := s.nextLane[workstationID]
	s.nextLane[workstationID] = lane + 1
	s.lanes[key] = lane
	return lane
}

// warn records a task the run could not schedule.
func (s *runState) warn(task Task, reason string) {
	s.warnings = append(s.warnings, TaskWarning{
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Title:     task.Title,
		Reason:    reason,
	})
}
