package report

import (
	"fmt"
	"sort"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
)

const (
	sickRuleMinTotal   = 3
	sickRuleMinPercent = 40
	absenceMinTotal    = 4
	absenceMinPercent  = 50
)

type employeeEntries struct {
	id      string
	name    string
	entries []entry.TimeEntry
}

// groupByEmployee buckets entries per employee, ordered by ascending employee ID.
func groupByEmployee(entries []entry.TimeEntry) []employeeEntries {
	index := make(map[string]int)
	var groups []employeeEntries
	for _, e := range entries {
		i, ok := index[e.EmployeeID]
		if !ok {
			i = len(groups)
			index[e.EmployeeID] = i
			groups = append(groups, employeeEntries{id: e.EmployeeID, name: e.EmployeeName})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].id < groups[j].id })
	return groups
}

// BuildWeekdayPatterns computes the per-weekday absence histogram of every employee
// found in entries. Only sick leave and vacation are counted.
func BuildWeekdayPatterns(entries []entry.TimeEntry) report.WeekdayPatternReport {
	var absences []entry.TimeEntry
	for _, e := range entries {
		if e.Category == entry.CategorySickLeave || e.Category == entry.CategoryVacation {
			absences = append(absences, e)
		}
	}

	result := report.WeekdayPatternReport{Employees: make([]report.WeekdayPattern, 0)}
	for _, group := range groupByEmployee(absences) {
		result.Employees = append(result.Employees, buildWeekdayPattern(group))
	}
	return result
}

func buildWeekdayPattern(group employeeEntries) report.WeekdayPattern {
	p := report.WeekdayPattern{
		EmployeeID:   group.id,
		EmployeeName: group.name,
		Anomalies:    make([]report.Flag, 0),
	}

	var sick [7]int
	for _, e := range group.entries {
		wd := int(e.Date.Weekday())
		p.Weekdays[wd].Total++
		switch e.Category {
		case entry.CategorySickLeave:
			p.Weekdays[wd].SickLeave++
			sick[wd]++
			p.SickDays++
		case entry.CategoryVacation:
			p.Weekdays[wd].Vacation++
			p.VacationDays++
		}
	}
	p.TotalAbsences = len(group.entries)

	for i := range p.Weekdays {
		p.Weekdays[i].Weekday = report.WeekdayNames[i]
		if p.TotalAbsences > 0 {
			p.Weekdays[i].Percent = roundHalfUp(float64(p.Weekdays[i].Total) / float64(p.TotalAbsences) * 100)
		}
	}

	// Rule A: sick days concentrated on Monday or Friday.
	if p.SickDays >= sickRuleMinTotal {
		for _, wd := range []int{1, 5} {
			pct := roundHalfUp(float64(sick[wd]) / float64(p.SickDays) * 100)
			if pct >= sickRuleMinPercent {
				p.Anomalies = append(p.Anomalies, report.Flag{
					Severity: report.SeverityWarning,
					Code:     report.CodeSickWeekdayConcentration,
					Message: fmt.Sprintf("%s is on sick leave on %s in %d%% of cases (%d of %d days).",
						group.name, report.WeekdayNames[wd], pct, sick[wd], p.SickDays),
				})
			}
		}
	}

	// Rule B: any weekday holding most of all absences.
	if p.TotalAbsences >= absenceMinTotal {
		for i, b := range p.Weekdays {
			if b.Percent >= absenceMinPercent {
				p.Anomalies = append(p.Anomalies, report.Flag{
					Severity: report.SeverityWarning,
					Code:     report.CodeAbsenceWeekdayConcentration,
					Message: fmt.Sprintf("%d%% of all absences of %s fall on %s (%d of %d days).",
						b.Percent, group.name, report.WeekdayNames[i], b.Total, p.TotalAbsences),
				})
			}
		}
	}

	p.NoAnomalies = len(p.Anomalies) == 0
	return p
}
