package plan

import "time"

// findEligible returns the first employee, in supply order, who carries
// the required skill and has no reservation intersecting [start, end).
// An empty skillID matches every employee. Returns nil when no such
// employee exists. Linear scan; eligible sets are expected to be small.
func findEligible(skillID string, start, end time.Time, employees []Employee, blocks map[string][]TimeBlock) *Employee {
	span := Interval{Start: start, End: end}

	for i := range employees {
		emp := &employees[i]
		if skillID != "" && !emp.Skills[skillID] {
			continue
		}

		conflict := false
		for _, block := range blocks[emp.ID] {
			if span.Overlaps(Interval{Start: block.Start, End: block.End}) {
				conflict = true
				break
			}
		}
		if !conflict {
			return emp
		}
	}

	return nil
}
