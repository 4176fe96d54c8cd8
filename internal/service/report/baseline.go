package report

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
)

const (
	minExpected        = 0.5
	deviationThreshold = 15
)

type kpiTotals struct {
	minutes      int
	sickDays     int
	vacationDays int
}

func (t *kpiTotals) add(e entry.TimeEntry) {
	t.minutes += e.NetMinutes
	switch e.Category {
	case entry.CategorySickLeave:
		t.sickDays++
	case entry.CategoryVacation:
		t.vacationDays++
	}
}

// BuildPeriodBaseline compares the entries inside from..to (inclusive) with the
// per-day rates of the whole history in entries. Callers pass every entry of the
// employee, or of everyone when employeeID is nil.
func BuildPeriodBaseline(entries []entry.TimeEntry, from, to time.Time, employeeID *string) report.PeriodBaselineReport {
	periodDays := daySpan(from, to)

	var actual, total kpiTotals
	workDates := make(map[time.Time]struct{})
	var first, last time.Time
	for i, e := range entries {
		total.add(e)
		if i == 0 || e.Date.Before(first) {
			first = e.Date
		}
		if i == 0 || e.Date.After(last) {
			last = e.Date
		}

		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		actual.add(e)
		if e.NetMinutes > 0 {
			workDates[e.Date] = struct{}{}
		}
	}

	// With no history outside from..to the baseline is the period itself.
	baselineDays := periodDays
	if len(entries) > 0 && (first.Before(from) || last.After(to)) {
		baselineDays = daySpan(first, last)
	}

	hoursPerDay := hours(total.minutes) / float64(baselineDays)
	sickPerDay := float64(total.sickDays) / float64(baselineDays)
	vacationPerDay := float64(total.vacationDays) / float64(baselineDays)

	expectedHours := hoursPerDay * float64(periodDays)
	expectedSick := sickPerDay * float64(periodDays)
	expectedVacation := vacationPerDay * float64(periodDays)

	actualHours := hours(actual.minutes)

	r := report.PeriodBaselineReport{
		EmployeeID: employeeID,
		Period: report.Period{
			From: from.Format("2006-01-02"),
			To:   to.Format("2006-01-02"),
			Days: periodDays,
		},
		Actual: report.PeriodKPIs{
			Hours:        roundTo(actualHours, 2),
			SickDays:     actual.sickDays,
			VacationDays: actual.vacationDays,
			WorkDays:     len(workDates),
		},
		Baseline: report.BaselineKPIs{
			Days:                 baselineDays,
			HoursPerDay:          roundTo(hoursPerDay, 3),
			SickDaysPerDay:       roundTo(sickPerDay, 3),
			VacationDaysPerDay:   roundTo(vacationPerDay, 3),
			ExpectedHours:        roundTo(expectedHours, 1),
			ExpectedSickDays:     roundTo(expectedSick, 1),
			ExpectedVacationDays: roundTo(expectedVacation, 1),
		},
		Deviations: report.Deviations{
			Hours:        deviation(actualHours, expectedHours),
			SickDays:     deviation(float64(actual.sickDays), expectedSick),
			VacationDays: deviation(float64(actual.vacationDays), expectedVacation),
		},
		Flags: make([]report.Flag, 0),
	}

	checks := []struct {
		code        string
		label       string
		unit        string
		actual      float64
		expected    float64
		pct         *int
		higherIsBad bool
	}{
		{report.CodeSickDaysDeviation, "Sick days", "days", float64(actual.sickDays), expectedSick, r.Deviations.SickDays, true},
		{report.CodeVacationDaysDeviation, "Vacation days", "days", float64(actual.vacationDays), expectedVacation, r.Deviations.VacationDays, false},
		{report.CodeHoursDeviation, "Working hours", "h", actualHours, expectedHours, r.Deviations.Hours, true},
	}
	for _, c := range checks {
		if c.pct == nil || abs(*c.pct) < deviationThreshold {
			continue
		}
		direction := "lower"
		if *c.pct > 0 {
			direction = "higher"
		}
		severity := report.SeverityInfo
		if (*c.pct > 0) == c.higherIsBad {
			severity = report.SeverityWarning
		}
		r.Flags = append(r.Flags, report.Flag{
			Severity: severity,
			Code:     c.code,
			Message: fmt.Sprintf("%s in this period are %d%% %s than average (%.1f %s vs. expected %.1f %s).",
				c.label, abs(*c.pct), direction, c.actual, c.unit, c.expected, c.unit),
		})
	}

	switch {
	case len(r.Flags) > 0:
		r.Status = report.BaselineWarnings
	case len(entries) > 0:
		r.Status = report.BaselineNominal
	default:
		r.Status = report.BaselineInsufficientData
	}
	return r
}

// deviation is nil when expected is too small for a meaningful percentage.
func deviation(actual, expected float64) *int {
	if expected < minExpected || math.IsNaN(expected) {
		return nil
	}
	pct := roundHalfUp((actual - expected) / expected * 100)
	return &pct
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
