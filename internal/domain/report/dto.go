package report

import (
	"bytes"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

func validateEmployeeID(employeeID string) validator.ValidationErrors {
	if employeeID != "" && !validator.IsValidUUID(employeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		}}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type WeekdayPatternRequest struct {
	EmployeeID string
}

func (r *WeekdayPatternRequest) Validate() error {
	if errs := validateEmployeeID(r.EmployeeID); len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *WeekdayPatternRequest) EmployeeFilter() *string { return optional(r.EmployeeID) }

type PeriodBaselineRequest struct {
	EmployeeID string
	From       string
	To         string

	from, to time.Time
}

func (r *PeriodBaselineRequest) Validate() error {
	errs := validateEmployeeID(r.EmployeeID)

	var fromOK, toOK bool
	if validator.IsEmpty(r.From) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from is required"})
	} else if r.from, fromOK = validator.IsValidDate(r.From); !fromOK {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to is required"})
	} else if r.to, toOK = validator.IsValidDate(r.To); !toOK {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if fromOK && toOK && r.from.After(r.to) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: ErrInvalidDateRange.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed dates. Only meaningful after a successful Validate.
func (r *PeriodBaselineRequest) Range() (time.Time, time.Time) { return r.from, r.to }

func (r *PeriodBaselineRequest) EmployeeFilter() *string { return optional(r.EmployeeID) }

type TaskIntervalsRequest struct {
	EmployeeID string
	Category   string
}

func (r *TaskIntervalsRequest) Validate() error {
	errs := validateEmployeeID(r.EmployeeID)

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category is required"})
	} else if _, err := entry.ParseCategory(r.Category); err != nil {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "category is not a known category"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *TaskIntervalsRequest) EmployeeFilter() *string { return optional(r.EmployeeID) }

type TimesheetExportRequest struct {
	Month      string
	EmployeeID string

	month time.Time
}

func (r *TimesheetExportRequest) Validate() error {
	errs := validateEmployeeID(r.EmployeeID)

	var ok bool
	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required"})
	} else if r.month, ok = validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthStart returns the first day of the requested month. Only meaningful after Validate.
func (r *TimesheetExportRequest) MonthStart() time.Time { return r.month }

func (r *TimesheetExportRequest) EmployeeFilter() *string { return optional(r.EmployeeID) }

type TimesheetFile struct {
	Filename    string
	ContentType string
	Content     *bytes.Buffer
}
