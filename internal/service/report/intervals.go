package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
)

// BuildTaskIntervals computes how regularly each employee records the given category.
func BuildTaskIntervals(entries []entry.TimeEntry, category entry.Category) report.TaskIntervalReport {
	var matching []entry.TimeEntry
	for _, e := range entries {
		if e.Category == category {
			matching = append(matching, e)
		}
	}

	result := report.TaskIntervalReport{
		Category:  string(category),
		Employees: make([]report.TaskInterval, 0),
	}
	for _, group := range groupByEmployee(matching) {
		result.Employees = append(result.Employees, buildTaskInterval(group, category))
	}
	return result
}

func buildTaskInterval(group employeeEntries, category entry.Category) report.TaskInterval {
	sort.SliceStable(group.entries, func(i, j int) bool {
		a, b := group.entries[i], group.entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	ti := report.TaskInterval{
		EmployeeID:   group.id,
		EmployeeName: group.name,
		Category:     string(category),
		Count:        len(group.entries),
		Entries:      make([]report.IntervalEntry, 0, len(group.entries)),
	}

	totalMinutes := 0
	var gaps []int
	for i, e := range group.entries {
		totalMinutes += e.NetMinutes
		ie := report.IntervalEntry{
			Date:        e.Date.Format("2006-01-02"),
			Description: e.Description,
			Hours:       roundTo(hours(e.NetMinutes), 2),
			First:       i == 0,
		}
		if i > 0 {
			gap := int(math.Round(e.Date.Sub(group.entries[i-1].Date).Hours() / 24))
			gaps = append(gaps, gap)
			ie.GapDays = &gap
		}
		ti.Entries = append(ti.Entries, ie)
	}
	ti.TotalHours = roundTo(hours(totalMinutes), 2)

	if len(gaps) == 0 {
		ti.Summary = fmt.Sprintf("%q was recorded %s; not enough data to compute intervals.",
			category, times(ti.Count))
		return ti
	}

	minGap, maxGap, sum := gaps[0], gaps[0], 0
	for _, g := range gaps {
		minGap = min(minGap, g)
		maxGap = max(maxGap, g)
		sum += g
	}
	avgGap := roundHalfUp(float64(sum) / float64(len(gaps)))
	ti.MinGapDays, ti.AvgGapDays, ti.MaxGapDays = &minGap, &avgGap, &maxGap
	ti.Summary = fmt.Sprintf("%q was recorded %s, on average every %d days (min: %d, max: %d days).",
		category, times(ti.Count), avgGap, minGap, maxGap)
	return ti
}

func times(n int) string {
	if n == 1 {
		return "once"
	}
	return fmt.Sprintf("%d times", n)
}
