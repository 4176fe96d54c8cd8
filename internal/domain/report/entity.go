package report

// Severity separates concerning findings from informational ones.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Flag codes.
const (
	CodeSickWeekdayConcentration    = "sick_weekday_concentration"
	CodeAbsenceWeekdayConcentration = "absence_weekday_concentration"
	CodeSickDaysDeviation           = "sick_days_deviation"
	CodeVacationDaysDeviation       = "vacation_days_deviation"
	CodeHoursDeviation              = "hours_deviation"
)

type Flag struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// WeekdayNames is indexed by time.Weekday (Sunday first).
var WeekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type WeekdayBucket struct {
	Weekday   string `json:"weekday"`
	SickLeave int    `json:"sick_leave"`
	Vacation  int    `json:"vacation"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

// WeekdayPattern is the absence histogram of one employee.
type WeekdayPattern struct {
	EmployeeID    string           `json:"employee_id"`
	EmployeeName  string           `json:"employee_name"`
	TotalAbsences int              `json:"total_absences"`
	SickDays      int              `json:"sick_days"`
	VacationDays  int              `json:"vacation_days"`
	Weekdays      [7]WeekdayBucket `json:"weekdays"`
	Anomalies     []Flag           `json:"anomalies"`
	// NoAnomalies is set when no rule fired.
	NoAnomalies bool `json:"no_anomalies"`
}

// WeekdayPatternReport lists employees in ascending employee ID order.
type WeekdayPatternReport struct {
	Employees []WeekdayPattern `json:"employees"`
}

// BaselineStatus summarizes a period comparison.
type BaselineStatus string

const (
	BaselineWarnings         BaselineStatus = "warnings"
	BaselineNominal          BaselineStatus = "nominal"
	BaselineInsufficientData BaselineStatus = "insufficient_data"
)

type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
	Days int    `json:"days"`
}

type PeriodKPIs struct {
	Hours        float64 `json:"hours"`
	SickDays     int     `json:"sick_days"`
	VacationDays int     `json:"vacation_days"`
	WorkDays     int     `json:"work_days"`
}

type BaselineKPIs struct {
	Days                 int     `json:"days"`
	HoursPerDay          float64 `json:"hours_per_day"`
	SickDaysPerDay       float64 `json:"sick_days_per_day"`
	VacationDaysPerDay   float64 `json:"vacation_days_per_day"`
	ExpectedHours        float64 `json:"expected_hours"`
	ExpectedSickDays     float64 `json:"expected_sick_days"`
	ExpectedVacationDays float64 `json:"expected_vacation_days"`
}

// Deviations are percentages; nil means the expected value was too small to compare.
type Deviations struct {
	Hours        *int `json:"hours"`
	SickDays     *int `json:"sick_days"`
	VacationDays *int `json:"vacation_days"`
}

type PeriodBaselineReport struct {
	EmployeeID *string        `json:"employee_id"`
	Period     Period         `json:"period"`
	Actual     PeriodKPIs     `json:"actual"`
	Baseline   BaselineKPIs   `json:"baseline"`
	Deviations Deviations     `json:"deviations"`
	Status     BaselineStatus `json:"status"`
	Flags      []Flag         `json:"flags"`
}

type IntervalEntry struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	// GapDays is nil for the first entry, which has no predecessor.
	GapDays *int `json:"gap_days"`
	First   bool `json:"first"`
}

// TaskInterval holds the recurrence statistics of one employee.
// Min, Avg and Max are nil when fewer than two entries exist.
type TaskInterval struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Category     string          `json:"category"`
	Count        int             `json:"count"`
	TotalHours   float64         `json:"total_hours"`
	MinGapDays   *int            `json:"min_gap_days"`
	AvgGapDays   *int            `json:"avg_gap_days"`
	MaxGapDays   *int            `json:"max_gap_days"`
	Summary      string          `json:"summary"`
	Entries      []IntervalEntry `json:"entries"`
}

// TaskIntervalReport lists employees in ascending employee ID order.
type TaskIntervalReport struct {
	Category  string         `json:"category"`
	Employees []TaskInterval `json:"employees"`
}
