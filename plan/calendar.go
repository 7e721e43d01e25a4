package plan

import (
	"sort"
	"time"
)

// DayWindow is the resolved working window of one team on one date,
// with break intervals sorted ascending by start.
type DayWindow struct {
	Start  time.Time
	End    time.Time
	Breaks []Interval
}

// breakAt returns the break containing t, if any. Breaks are half-open.
func (w DayWindow) breakAt(t time.Time) (Interval, bool) {
	for _, br := range w.Breaks {
		if !t.Before(br.Start) && t.Before(br.End) {
			return br, true
		}
	}
	return Interval{}, false
}

type calendarKey struct {
	team    string
	weekday time.Weekday
}

// Calendar resolves dates to working windows for each team. Built once
// per run from the reference snapshot; all methods are pure lookups.
type Calendar struct {
	rules    map[calendarKey]WorkingHoursRule
	holidays map[string]struct{} // team|YYYY-MM-DD
}

// NewCalendar builds a calendar from working-hours rules and holidays.
// Inactive rules are ignored; breaks are sorted ascending by start.
func NewCalendar(rules []WorkingHoursRule, holidays []Holiday) *Calendar {
	cal := &Calendar{
		rules:    make(map[calendarKey]WorkingHoursRule),
		holidays: make(map[string]struct{}),
	}

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		breaks := make([]BreakWindow, len(rule.Breaks))
		copy(breaks, rule.Breaks)
		sort.Slice(breaks, func(i, j int) bool { return breaks[i].StartMinute < breaks[j].StartMinute })
		rule.Breaks = breaks
		cal.rules[calendarKey{rule.TeamID, rule.Weekday}] = rule
	}

	for _, h := range holidays {
		cal.holidays[h.TeamID+"|"+h.Date.Format("2006-01-02")] = struct{}{}
	}

	return cal
}

// IsWorkingDay reports whether date is a working day for team: not a
// weekend, not a team holiday, and covered by an active rule.
func (c *Calendar) IsWorkingDay(team string, date time.Time) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if _, holiday := c.holidays[team+"|"+date.Format("2006-01-02")]; holiday {
		return false
	}
	_, ok := c.rules[calendarKey{team, wd}]
	return ok
}

// Window returns the working window for team on the given date, or
// false when the date is not a working day.
func (c *Calendar) Window(team string, date time.Time) (DayWindow, bool) {
	if !c.IsWorkingDay(team, date) {
		return DayWindow{}, false
	}

	rule := c.rules[calendarKey{team, date.Weekday()}]
	day := midnight(date)

	win := DayWindow{
		Start: day.Add(time.Duration(rule.StartMinute) * time.Minute),
		End:   day.Add(time.Duration(rule.EndMinute) * time.Minute),
	}
	for _, br := range rule.Breaks {
		win.Breaks = append(win.Breaks, Interval{
			Start: day.Add(time.Duration(br.StartMinute) * time.Minute),
			End:   day.Add(time.Duration(br.EndMinute) * time.Minute),
		})
	}

	return win, true
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextDay returns midnight of the day after t.
func nextDay(t time.Time) time.Time {
	return midnight(t).AddDate(0, 0, 1)
}
