package setting

import (
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpdateSettingsRequest struct {
	BreakThresholdHours  *float64         `json:"break_threshold_hours,omitempty"`
	BreakDurationMinutes *int             `json:"break_duration_minutes,omitempty"`
	DailyAllowanceRate   *decimal.Decimal `json:"daily_allowance_rate,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BreakThresholdHours == nil && r.BreakDurationMinutes == nil && r.DailyAllowanceRate == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "settings",
			Message: "at least one setting must be provided",
		})
	}
	if r.BreakThresholdHours != nil && (*r.BreakThresholdHours < 0 || *r.BreakThresholdHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   KeyBreakThresholdHours,
			Message: KeyBreakThresholdHours + " must be between 0 and 24",
		})
	}
	if r.BreakDurationMinutes != nil && (*r.BreakDurationMinutes < 0 || *r.BreakDurationMinutes > 24*60) {
		errs = append(errs, validator.ValidationError{
			Field:   KeyBreakDurationMinutes,
			Message: KeyBreakDurationMinutes + " must be between 0 and 1440",
		})
	}
	if r.DailyAllowanceRate != nil && r.DailyAllowanceRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   KeyDailyAllowanceRate,
			Message: KeyDailyAllowanceRate + " must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	BreakThresholdHours  float64         `json:"break_threshold_hours"`
	BreakDurationMinutes int             `json:"break_duration_minutes"`
	DailyAllowanceRate   decimal.Decimal `json:"daily_allowance_rate"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		BreakThresholdHours:  s.BreakPolicy.ThresholdHours,
		BreakDurationMinutes: s.BreakPolicy.DurationMinutes,
		DailyAllowanceRate:   s.DailyAllowanceRate,
	}
}
