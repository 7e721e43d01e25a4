package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAcrossWeekend(t *testing.T) {
	// 120 minutes starting Friday 15:30 must split into a 30-minute
	// Friday segment and a 90-minute Monday segment, skipping the weekend.
	cal := NewCalendar(testRules(), nil)

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 9, 15, 30), 120)
	require.True(t, ok)
	require.Len(t, segs, 2)

	assert.Equal(t, at(2026, time.January, 9, 15, 30), segs[0].Start)
	assert.Equal(t, at(2026, time.January, 9, 16, 0), segs[0].End)
	assert.Equal(t, at(2026, time.January, 12, 8, 0), segs[1].Start)
	assert.Equal(t, at(2026, time.January, 12, 9, 30), segs[1].End)
	assert.Equal(t, 120, segs[0].Minutes()+segs[1].Minutes())
}

func TestSplitAroundBreak(t *testing.T) {
	cal := NewCalendar(testRules(), nil)

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 5, 11, 0), 120)
	require.True(t, ok)
	require.Len(t, segs, 2)

	assert.Equal(t, at(2026, time.January, 5, 11, 0), segs[0].Start)
	assert.Equal(t, at(2026, time.January, 5, 12, 0), segs[0].End)
	assert.Equal(t, at(2026, time.January, 5, 12, 30), segs[1].Start)
	assert.Equal(t, at(2026, time.January, 5, 13, 30), segs[1].End)
}

func TestSplitStartInsideBreak(t *testing.T) {
	cal := NewCalendar(testRules(), nil)

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 5, 12, 10), 30)
	require.True(t, ok)
	require.Len(t, segs, 1)
	assert.Equal(t, at(2026, time.January, 5, 12, 30), segs[0].Start)
}

func TestSplitBeforeWindowStart(t *testing.T) {
	cal := NewCalendar(testRules(), nil)

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 5, 6, 0), 60)
	require.True(t, ok)
	require.Len(t, segs, 1)
	assert.Equal(t, at(2026, time.January, 5, 8, 0), segs[0].Start)
}

func TestSplitStartOnWeekend(t *testing.T) {
	cal := NewCalendar(testRules(), nil)

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 10, 9, 0), 60)
	require.True(t, ok)
	require.Len(t, segs, 1)
	assert.Equal(t, at(2026, time.January, 12, 8, 0), segs[0].Start)
}

func TestSplitFullDay(t *testing.T) {
	// A full working day is 450 minutes: 240 before the break, 210 after.
	cal := NewCalendar(testRules(), nil)

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 5, 8, 0), 450)
	require.True(t, ok)
	require.Len(t, segs, 2)
	assert.Equal(t, at(2026, time.January, 5, 16, 0), segs[1].End)

	total := 0
	for _, seg := range segs {
		total += seg.Minutes()
	}
	assert.Equal(t, 450, total)
}

func TestSplitSkipsHoliday(t *testing.T) {
	cal := NewCalendar(testRules(), []Holiday{
		{TeamID: testTeam, Date: at(2026, time.January, 12, 0, 0)}, // Monday
	})

	segs, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 9, 15, 30), 120)
	require.True(t, ok)
	require.Len(t, segs, 2)
	// Overflow lands on Tuesday, not the Monday holiday.
	assert.Equal(t, at(2026, time.January, 13, 8, 0), segs[1].Start)
}

func TestSplitInfeasible(t *testing.T) {
	cal := NewCalendar(nil, nil) // no rules at all

	_, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 5, 8, 0), 60)
	assert.False(t, ok, "day-search cap must fail the placement")
}

func TestSplitNonPositiveDuration(t *testing.T) {
	cal := NewCalendar(testRules(), nil)

	_, ok := splitIntoSegments(cal, testTeam, at(2026, time.January, 5, 8, 0), 0)
	assert.False(t, ok)
}
