package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRiskCalendar() *Calendar {
	return NewCalendar(testRules(), nil)
}

func TestBuildRisksClassification(t *testing.T) {
	projects := []Project{
		{ID: "P-ok", Name: "On track", InstallDate: at(2026, time.January, 20, 0, 0)},
		{ID: "P-tight", Name: "Tight", InstallDate: at(2026, time.January, 7, 0, 0)},
		{ID: "P-late", Name: "Late", InstallDate: at(2026, time.January, 5, 0, 0)},
		{ID: "P-none", Name: "Nothing scheduled", InstallDate: at(2026, time.January, 30, 0, 0)},
	}
	tasksByProject := map[string][]Task{
		"P-ok":    {{ID: "T1", ProjectID: "P-ok", Sequence: 1}},
		"P-tight": {{ID: "T2", ProjectID: "P-tight", Sequence: 1}},
		"P-late":  {{ID: "T3", ProjectID: "P-late", Sequence: 1}},
		"P-none":  {{ID: "T4", ProjectID: "P-none", Sequence: 1}},
	}
	taskEnds := map[string]time.Time{
		"T1": at(2026, time.January, 8, 16, 0), // Thu; 8 working days to Tue Jan 20
		"T2": at(2026, time.January, 6, 16, 0), // Tue; 1 working day to Wed Jan 7
		"T3": at(2026, time.January, 6, 16, 0), // ends after install
	}

	risks := buildRisks(testRiskCalendar(), testTeam, projects, tasksByProject, taskEnds, 2)
	require.Len(t, risks, 4)

	byProject := make(map[string]ProjectRisk)
	for _, r := range risks {
		byProject[r.ProjectID] = r
	}

	assert.Equal(t, RiskOnTrack, byProject["P-ok"].Status)
	assert.Equal(t, 8, byProject["P-ok"].SlackDays)

	assert.Equal(t, RiskAtRisk, byProject["P-tight"].Status)
	assert.Equal(t, 1, byProject["P-tight"].SlackDays)

	assert.Equal(t, RiskOverdue, byProject["P-late"].Status)
	assert.Equal(t, -1, byProject["P-late"].SlackDays)

	assert.Equal(t, RiskPending, byProject["P-none"].Status)
	assert.True(t, byProject["P-none"].FinalTaskEnd.IsZero())
}

func TestBuildRisksSlackCountsWorkingDays(t *testing.T) {
	// Final step ends Friday, installation the following Monday: the
	// weekend buys no margin, so the real slack is one working day and
	// the project is at risk under the default two-day threshold.
	projects := []Project{{ID: "P1", Name: "Weekend gap", InstallDate: at(2026, time.January, 12, 0, 0)}}
	tasksByProject := map[string][]Task{
		"P1": {{ID: "T1", ProjectID: "P1", Sequence: 1}},
	}
	taskEnds := map[string]time.Time{"T1": at(2026, time.January, 9, 16, 0)} // Friday

	risks := buildRisks(testRiskCalendar(), testTeam, projects, tasksByProject, taskEnds, 2)
	require.Len(t, risks, 1)
	assert.Equal(t, RiskAtRisk, risks[0].Status)
	assert.Equal(t, 1, risks[0].SlackDays)
}

func TestBuildRisksSlackSkipsHolidays(t *testing.T) {
	// A holiday between the final step and the installation is not
	// working slack either.
	cal := NewCalendar(testRules(), []Holiday{
		{TeamID: testTeam, Date: at(2026, time.January, 7, 0, 0)},
	})
	projects := []Project{{ID: "P1", Name: "Holiday gap", InstallDate: at(2026, time.January, 8, 0, 0)}}
	tasksByProject := map[string][]Task{
		"P1": {{ID: "T1", ProjectID: "P1", Sequence: 1}},
	}
	taskEnds := map[string]time.Time{"T1": at(2026, time.January, 6, 16, 0)} // Tuesday

	risks := buildRisks(cal, testTeam, projects, tasksByProject, taskEnds, 2)
	require.Len(t, risks, 1)
	assert.Equal(t, RiskAtRisk, risks[0].Status)
	assert.Equal(t, 1, risks[0].SlackDays)
}

func TestBuildRisksFinalStepByHighestSequence(t *testing.T) {
	projects := []Project{{ID: "P1", Name: "Chain", InstallDate: at(2026, time.January, 20, 0, 0)}}
	tasksByProject := map[string][]Task{
		"P1": {
			{ID: "T1", ProjectID: "P1", Sequence: 1},
			{ID: "T2", ProjectID: "P1", Sequence: 3},
			{ID: "T3", ProjectID: "P1", Sequence: 2},
		},
	}
	// T3 ends latest in wall time but T2 carries the highest sequence:
	// risk is judged by the production order, not by the clock.
	taskEnds := map[string]time.Time{
		"T1": at(2026, time.January, 5, 10, 0),
		"T2": at(2026, time.January, 6, 12, 0),
		"T3": at(2026, time.January, 7, 16, 0),
	}

	risks := buildRisks(testRiskCalendar(), testTeam, projects, tasksByProject, taskEnds, 2)
	require.Len(t, risks, 1)
	assert.Equal(t, at(2026, time.January, 6, 12, 0), risks[0].FinalTaskEnd)
}

func TestBuildRisksUnscheduledFinalStepIgnored(t *testing.T) {
	projects := []Project{{ID: "P1", Name: "Partial", InstallDate: at(2026, time.January, 20, 0, 0)}}
	tasksByProject := map[string][]Task{
		"P1": {
			{ID: "T1", ProjectID: "P1", Sequence: 1},
			{ID: "T2", ProjectID: "P1", Sequence: 2}, // never scheduled
		},
	}
	taskEnds := map[string]time.Time{"T1": at(2026, time.January, 6, 16, 0)}

	risks := buildRisks(testRiskCalendar(), testTeam, projects, tasksByProject, taskEnds, 2)
	require.Len(t, risks, 1)
	assert.Equal(t, RiskOnTrack, risks[0].Status)
	assert.Equal(t, at(2026, time.January, 6, 16, 0), risks[0].FinalTaskEnd)
}
