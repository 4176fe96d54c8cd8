package setting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/integrity"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

type SettingServiceImpl struct {
	transactor  database.Transactor
	settingRepo setting.SettingRepository
}

func NewSettingService(transactor database.Transactor, settingRepo setting.SettingRepository) setting.SettingService {
	return &SettingServiceImpl{
		transactor:  transactor,
		settingRepo: settingRepo,
	}
}

// load reads every setting and falls back to defaults for missing or malformed values.
func (s *SettingServiceImpl) load(ctx context.Context) (setting.Settings, error) {
	values, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return setting.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	result := setting.DefaultSettings()

	if raw, ok := values[setting.KeyBreakThresholdHours]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			result.BreakPolicy.ThresholdHours = v
		} else {
			slog.Warn("Ignoring invalid setting", "key", setting.KeyBreakThresholdHours, "value", raw)
		}
	}
	if raw, ok := values[setting.KeyBreakDurationMinutes]; ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			result.BreakPolicy.DurationMinutes = v
		} else {
			slog.Warn("Ignoring invalid setting", "key", setting.KeyBreakDurationMinutes, "value", raw)
		}
	}
	if raw, ok := values[setting.KeyDailyAllowanceRate]; ok {
		if v, err := decimal.NewFromString(raw); err == nil && !v.IsNegative() {
			result.DailyAllowanceRate = v
		} else {
			slog.Warn("Ignoring invalid setting", "key", setting.KeyDailyAllowanceRate, "value", raw)
		}
	}

	return result, nil
}

// GetSettings implements setting.SettingService.
func (s *SettingServiceImpl) GetSettings(ctx context.Context) (setting.SettingsResponse, error) {
	current, err := s.load(ctx)
	if err != nil {
		return setting.SettingsResponse{}, err
	}
	return setting.NewSettingsResponse(current), nil
}

// UpdateSettings implements setting.SettingService.
func (s *SettingServiceImpl) UpdateSettings(ctx context.Context, req setting.UpdateSettingsRequest) (setting.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return setting.SettingsResponse{}, err
	}

	updates := make(map[string]string)
	if req.BreakThresholdHours != nil {
		updates[setting.KeyBreakThresholdHours] = strconv.FormatFloat(*req.BreakThresholdHours, 'f', -1, 64)
	}
	if req.BreakDurationMinutes != nil {
		updates[setting.KeyBreakDurationMinutes] = strconv.Itoa(*req.BreakDurationMinutes)
	}
	if req.DailyAllowanceRate != nil {
		updates[setting.KeyDailyAllowanceRate] = req.DailyAllowanceRate.String()
	}

	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		for key, value := range updates {
			if err := s.settingRepo.Upsert(txCtx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("Failed to update settings", "error", err)
		return setting.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}

	slog.Info("Settings updated", "keys", len(updates))
	return s.GetSettings(ctx)
}

// BreakPolicy implements setting.SettingService.
func (s *SettingServiceImpl) BreakPolicy(ctx context.Context) (timecalc.BreakPolicy, error) {
	current, err := s.load(ctx)
	if err != nil {
		return timecalc.BreakPolicy{}, err
	}
	return current.BreakPolicy, nil
}

// AllowanceRate implements setting.SettingService.
func (s *SettingServiceImpl) AllowanceRate(ctx context.Context) (decimal.Decimal, error) {
	current, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return current.DailyAllowanceRate, nil
}

// Secret implements setting.SettingService.
func (s *SettingServiceImpl) Secret(ctx context.Context) (string, error) {
	secret, err := s.settingRepo.Get(ctx, setting.KeySecret)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, setting.ErrSettingNotFound) {
		return "", fmt.Errorf("failed to read integrity secret: %w", err)
	}

	candidate, err := integrity.NewSecret()
	if err != nil {
		return "", err
	}

	secret, err = s.settingRepo.GetOrCreate(ctx, setting.KeySecret, candidate)
	if err != nil {
		return "", fmt.Errorf("failed to resolve integrity secret: %w", err)
	}
	if secret == candidate {
		slog.Info("Integrity secret created")
	}
	return secret, nil
}
