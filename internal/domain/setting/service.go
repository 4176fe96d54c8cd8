package setting

import (
	"context"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

// SettingService exposes runtime configuration stored in the settings table
type SettingService interface {
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// BreakPolicy falls back to the defaults for missing or malformed values
	BreakPolicy(ctx context.Context) (timecalc.BreakPolicy, error)
	AllowanceRate(ctx context.Context) (decimal.Decimal, error)

	// Secret returns the integrity key, creating it atomically on first use
	Secret(ctx context.Context) (string, error)
}
