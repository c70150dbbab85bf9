/*
summary.go - Per-day and per-employee summary assembly

PURPOSE:
  Runs the full per-employee pipeline: reconstructed intervals → day
  buckets → per-day rounding → ordered DaySummary list → totals. One
  canonical summary shape backs the hours, daily and payroll views; each
  view projects out the optional fields it needs (first-in/last-out are
  only populated when requested).

SEE ALSO:
  - interval.go, bucket.go, rounding.go: The stages composed here
  - payroll.go: Consumes the resulting DaySummary list
*/
package engine

import "sort"

// BuildDaySummaries assembles the ordered day list for one employee.
// Intervals supply the minutes; the raw punch list supplies the
// first-in/last-out edges when includeInOut is set. A day appears if it
// has worked minutes or (when includeInOut) at least one punch.
func BuildDaySummaries(intervals []WorkInterval, punches []PunchEvent, win ReportWindow, includeInOut bool) []DaySummary {
	raw := BucketMinutesByDay(intervals, win.TZOffsetMinutes)

	var edges map[string]DayEdges
	if includeInOut {
		edges = ExtractDayEdges(punches, win.TZOffsetMinutes)
	}

	seen := make(map[string]bool, len(raw))
	var keys []string
	for day := range raw {
		seen[day] = true
		keys = append(keys, day)
	}
	for day := range edges {
		if !seen[day] {
			seen[day] = true
			keys = append(keys, day)
		}
	}
	sort.Strings(keys)

	days := make([]DaySummary, 0, len(keys))
	for _, day := range keys {
		rounded := RoundMinutes(raw[day], win.RoundMinutes)
		d := DaySummary{
			Date:           day,
			Minutes:        rounded,
			HoursDecimal:   HoursDecimal(rounded),
			HoursFormatted: FormatHours(rounded),
		}
		if includeInOut {
			e := edges[day]
			if e.FirstIn != nil {
				t := e.FirstIn.OccurredAt
				d.FirstIn = &t
			}
			if e.LastOut != nil {
				t := e.LastOut.OccurredAt
				d.LastOut = &t
			}
		}
		days = append(days, d)
	}
	return days
}

// BuildEmployeeSummary runs the whole pipeline for one employee.
// Employees with no punches in range still get a zero-filled summary.
func BuildEmployeeSummary(emp Employee, carryIn *PunchType, punches []PunchEvent, win ReportWindow, includeInOut bool) EmployeeHoursSummary {
	intervals := ReconstructIntervals(carryIn, punches, win.Start, win.End)
	days := BuildDaySummaries(intervals, punches, win, includeInOut)

	total := 0.0
	for _, d := range days {
		total += d.Minutes
	}

	return EmployeeHoursSummary{
		EmployeeID:   emp.ID,
		Name:         emp.Name,
		Days:         days,
		TotalMinutes: total,
	}
}
