package plan

import "time"

// ResolutionState distinguishes "dependency satisfied" from "prerequisite
// exists but is not yet scheduled". The zero value is Ready so that
// tasks without configured prerequisites fall through unchanged.
type ResolutionState int

const (
	// ResolutionReady means every existing prerequisite has a recorded
	// end time; MinStart carries the latest of them
	ResolutionReady ResolutionState = iota
	// ResolutionBlocked means a prerequisite task exists in the project
	// but has not been scheduled yet; the task must be deferred
	ResolutionBlocked
)

// Resolution is the outcome of limit-dependency resolution for one task.
type Resolution struct {
	State    ResolutionState
	MinStart time.Time
}

// resolveMinimumStart computes the earliest permissible start for a
// task gated by limit dependencies. Prerequisite skills without a
// matching task in the project do not block: they were intentionally
// never part of the project's work breakdown. A prerequisite task that
// exists but has no recorded end time blocks the whole resolution.
func resolveMinimumStart(task Task, projectTasks []Task, limits map[string][]string, taskEnds map[string]time.Time, timelineStart time.Time) Resolution {
	prereqSkills := limits[task.SkillID]
	if task.SkillID == "" || len(prereqSkills) == 0 {
		return Resolution{State: ResolutionReady, MinStart: timelineStart}
	}

	minStart := timelineStart
	for _, skill := range prereqSkills {
		for _, other := range projectTasks {
			if other.ID == task.ID || other.SkillID != skill {
				continue
			}
			end, scheduled := taskEnds[other.ID]
			if !scheduled {
				return Resolution{State: ResolutionBlocked}
			}
			if end.After(minStart) {
				minStart = end
			}
		}
	}

	return Resolution{State: ResolutionReady, MinStart: minStart}
}
