package setting

import (
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

const (
	KeyBreakThresholdHours  = "break_threshold_hours"
	KeyBreakDurationMinutes = "break_duration_minutes"
	KeyDailyAllowanceRate   = "daily_allowance_rate"

	// KeySecret holds the integrity stamping key. It is never exposed.
	KeySecret = "secret"
)

var DefaultDailyAllowanceRate = decimal.RequireFromString("1.27")

// Settings is the typed view of the writable settings.
type Settings struct {
	BreakPolicy        timecalc.BreakPolicy
	DailyAllowanceRate decimal.Decimal
}

func DefaultSettings() Settings {
	return Settings{
		BreakPolicy:        timecalc.DefaultBreakPolicy,
		DailyAllowanceRate: DefaultDailyAllowanceRate,
	}
}
