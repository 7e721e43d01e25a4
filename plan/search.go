package plan

import "time"

// placement is a successful earliest-slot search: the task's segments
// and the employee reserved across their full span.
type placement struct {
	Segments []Interval
	Employee Employee
}

// findEarliestSlots iterates candidate start instants beginning at
// minStart, advancing in stepMinutes increments within working days and
// jumping to the next day otherwise, until it finds a break-respecting
// segmentation for which an eligible, conflict-free employee exists
// over the first-to-last segment range. No candidate starts at or after
// the deadline; the deadline is run-global so that every task searches
// the same horizon regardless of how late its dependencies resolved.
// Returns ok=false once the deadline is reached; callers report that as
// an unschedulable task, not a fatal error.
func findEarliestSlots(cal *Calendar, team string, durationMinutes int, skillID string, employees []Employee, blocks map[string][]TimeBlock, minStart, deadline time.Time, stepMinutes int) (placement, bool) {
	step := time.Duration(stepMinutes) * time.Minute

	candidate := minStart
	for candidate.Before(deadline) {
		win, ok := cal.Window(team, candidate)
		if !ok || !candidate.Before(win.End) {
			candidate = nextDay(candidate)
			continue
		}
		if candidate.Before(win.Start) {
			candidate = win.Start
			if !candidate.Before(deadline) {
				break
			}
		}

		segments, feasible := splitIntoSegments(cal, team, candidate, durationMinutes)
		if feasible {
			first := segments[0].Start
			last := segments[len(segments)-1].End
			if emp := findEligible(skillID, first, last, employees, blocks); emp != nil {
				return placement{Segments: segments, Employee: *emp}, true
			}
		}

		candidate = candidate.Add(step)
	}

	return placement{}, false
}
