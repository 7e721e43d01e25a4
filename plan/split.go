package plan

import "time"

// maxDaySearch caps how many calendar days the splitter walks forward
// before the placement is treated as infeasible.
const maxDaySearch = 366

// splitIntoSegments walks forward from the candidate start, skipping
// breaks and non-working days, and returns contiguous segments whose
// summed length equals durationMinutes. Segments are half-open
// minute-granular intervals. Returns ok=false when the day-search cap
// is reached before the duration is exhausted.
func splitIntoSegments(cal *Calendar, team string, from time.Time, durationMinutes int) ([]Interval, bool) {
	if durationMinutes <= 0 {
		return nil, false
	}

	cursor := from
	remaining := durationMinutes
	var segments []Interval
	daysScanned := 0

	for remaining > 0 {
		win, ok := cal.Window(team, cursor)
		if !ok || !cursor.Before(win.End) {
			cursor = nextDay(cursor)
			daysScanned++
			if daysScanned > maxDaySearch {
				return nil, false
			}
			continue
		}

		if cursor.Before(win.Start) {
			cursor = win.Start
		}

		if br, inBreak := win.breakAt(cursor); inBreak {
			cursor = br.End
			continue
		}

		// Available time runs until the next break or the window end.
		limit := win.End
		for _, br := range win.Breaks {
			if br.Start.After(cursor) && br.Start.Before(limit) {
				limit = br.Start
				break
			}
		}

		available := int(limit.Sub(cursor) / time.Minute)
		if available <= 0 {
			cursor = limit
			continue
		}

		take := available
		if remaining < take {
			take = remaining
		}

		end := cursor.Add(time.Duration(take) * time.Minute)
		segments = append(segments, Interval{Start: cursor, End: end})
		remaining -= take
		cursor = end
	}

	return segments, true
}
