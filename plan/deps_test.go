package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveNoDependencyConfigured(t *testing.T) {
	timelineStart := at(2026, time.January, 5, 8, 0)
	task := Task{ID: "T1", SkillID: "cut", ProjectID: "P1"}

	res := resolveMinimumStart(task, nil, map[string][]string{}, nil, timelineStart)
	assert.Equal(t, ResolutionReady, res.State)
	assert.Equal(t, timelineStart, res.MinStart)
}

func TestResolveNoSkill(t *testing.T) {
	timelineStart := at(2026, time.January, 5, 8, 0)
	task := Task{ID: "T1", ProjectID: "P1"}
	limits := map[string][]string{"finish": {"cut"}}

	res := resolveMinimumStart(task, nil, limits, nil, timelineStart)
	assert.Equal(t, ResolutionReady, res.State)
}

func TestResolveMissingPrerequisiteDoesNotBlock(t *testing.T) {
	// The prerequisite skill was never part of this project's work
	// breakdown; the task is ready at the timeline start.
	timelineStart := at(2026, time.January, 5, 8, 0)
	task := Task{ID: "T1", SkillID: "finish", ProjectID: "P1"}
	projectTasks := []Task{task}
	limits := map[string][]string{"finish": {"cut"}}

	res := resolveMinimumStart(task, projectTasks, limits, map[string]time.Time{}, timelineStart)
	assert.Equal(t, ResolutionReady, res.State)
	assert.Equal(t, timelineStart, res.MinStart)
}

func TestResolveUnscheduledPrerequisiteBlocks(t *testing.T) {
	timelineStart := at(2026, time.January, 5, 8, 0)
	cutTask := Task{ID: "T-cut", SkillID: "cut", ProjectID: "P1"}
	task := Task{ID: "T-finish", SkillID: "finish", ProjectID: "P1"}
	projectTasks := []Task{cutTask, task}
	limits := map[string][]string{"finish": {"cut"}}

	res := resolveMinimumStart(task, projectTasks, limits, map[string]time.Time{}, timelineStart)
	assert.Equal(t, ResolutionBlocked, res.State)
}

func TestResolveReadyAtLatestPrerequisiteEnd(t *testing.T) {
	timelineStart := at(2026, time.January, 5, 8, 0)
	cutTask := Task{ID: "T-cut", SkillID: "cut", ProjectID: "P1"}
	weldTask := Task{ID: "T-weld", SkillID: "weld", ProjectID: "P1"}
	task := Task{ID: "T-finish", SkillID: "finish", ProjectID: "P1"}
	projectTasks := []Task{cutTask, weldTask, task}
	limits := map[string][]string{"finish": {"cut", "weld"}}
	ends := map[string]time.Time{
		"T-cut":  at(2026, time.January, 5, 10, 0),
		"T-weld": at(2026, time.January, 5, 14, 0),
	}

	res := resolveMinimumStart(task, projectTasks, limits, ends, timelineStart)
	assert.Equal(t, ResolutionReady, res.State)
	assert.Equal(t, at(2026, time.January, 5, 14, 0), res.MinStart)
}

func TestResolveOnePrerequisiteUnscheduledAmongMany(t *testing.T) {
	timelineStart := at(2026, time.January, 5, 8, 0)
	cutTask := Task{ID: "T-cut", SkillID: "cut", ProjectID: "P1"}
	weldTask := Task{ID: "T-weld", SkillID: "weld", ProjectID: "P1"}
	task := Task{ID: "T-finish", SkillID: "finish", ProjectID: "P1"}
	projectTasks := []Task{cutTask, weldTask, task}
	limits := map[string][]string{"finish": {"cut", "weld"}}
	ends := map[string]time.Time{
		"T-cut": at(2026, time.January, 5, 10, 0),
	}

	res := resolveMinimumStart(task, projectTasks, limits, ends, timelineStart)
	assert.Equal(t, ResolutionBlocked, res.State)
}
