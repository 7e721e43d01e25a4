package plan

import "time"

// buildRisks produces a completion-risk summary per project by
// comparing the end of the final production step (the scheduled task
// with the highest sequence number) against the installation date.
// Slack is counted in the team's working days, so a weekend between
// the final step and the installation buys no margin.
func buildRisks(cal *Calendar, team string, projects []Project, tasksByProject map[string][]Task, taskEnds map[string]time.Time, atRiskSlackDays int) []ProjectRisk {
	risks := make([]ProjectRisk, 0, len(projects))

	for _, project := range projects {
		var final Task
		var finalEnd time.Time
		found := false

		for _, task := range tasksByProject[project.ID] {
			end, scheduled := taskEnds[task.ID]
			if !scheduled {
				continue
			}
			if !found || task.Sequence > final.Sequence ||
				(task.Sequence == final.Sequence && end.After(finalEnd)) {
				final = task
				finalEnd = end
				found = true
			}
		}

		risk := ProjectRisk{
			ProjectID:   project.ID,
			ProjectName: project.Name,
		}

		if !found {
			risk.Status = RiskPending
			risks = append(risks, risk)
			continue
		}

		installDay := midnight(project.InstallDate)
		endDay := midnight(finalEnd)
		slack := workingDaysBetween(cal, team, endDay, installDay)

		risk.FinalTaskEnd = finalEnd
		risk.SlackDays = slack
		switch {
		case endDay.After(installDay):
			risk.Status = RiskOverdue
		case slack < atRiskSlackDays:
			risk.Status = RiskAtRisk
		default:
			risk.Status = RiskOnTrack
		}

		risks = append(risks, risk)
	}

	return risks
}

// workingDaysBetween counts the team's working days after from, up to
// and including to. Negative when to precedes from, mirroring the sign
// of the slack. Both arguments are midnights.
func workingDaysBetween(cal *Calendar, team string, from, to time.Time) int {
	if to.Before(from) {
		return -workingDaysBetween(cal, team, to, from)
	}

	days := 0
	for day := from.AddDate(0, 0, 1); !day.After(to); day = day.AddDate(0, 0, 1) {
		if cal.IsWorkingDay(team, day) {
			days++
		}
	}
	return days
}
