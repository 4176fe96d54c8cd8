package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/integrity"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxImportErrors = 10

type EntryServiceImpl struct {
	transactor     database.Transactor
	entryRepo      entry.EntryRepository
	employeeRepo   employee.EmployeeRepository
	settingService setting.SettingService
	metrics        *metrics.WorklogMetrics
	now            func() time.Time
}

func NewEntryService(
	transactor database.Transactor,
	entryRepo entry.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingService setting.SettingService,
	m *metrics.WorklogMetrics,
) entry.EntryService {
	return &EntryServiceImpl{
		transactor:     transactor,
		entryRepo:      entryRepo,
		employeeRepo:   employeeRepo,
		settingService: settingService,
		metrics:        m,
		now:            time.Now,
	}
}

// mutableFields is the caller-controlled part of an entry.
type mutableFields struct {
	date        string
	startTime   *string
	endTime     *string
	category    string
	isOutside   bool
	gratuity    decimal.Decimal
	description string
}

// normalizeClock returns nil for an absent time and HH:MM otherwise.
func normalizeClock(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	n, err := timecalc.NormalizeClock(*s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// durationError turns time arithmetic failures into client validation errors.
func durationError(err error) error {
	switch {
	case errors.Is(err, timecalc.ErrNegativeDuration):
		return validator.ValidationErrors{{Field: "end_time", Message: err.Error()}}
	case errors.Is(err, timecalc.ErrInvalidClock):
		return validator.ValidationErrors{{Field: "time", Message: err.Error()}}
	}
	return err
}

// apply fills e from f and recomputes the derived durations.
func apply(e *entry.TimeEntry, f mutableFields, policy timecalc.BreakPolicy) error {
	date, ok := validator.IsValidDate(f.date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	category, err := entry.ParseCategory(f.category)
	if err != nil {
		return err
	}
	if verrs := entry.ValidateGratuity(f.gratuity); verrs != nil {
		return verrs
	}
	start, err := normalizeClock(f.startTime)
	if err != nil {
		return durationError(err)
	}
	end, err := normalizeClock(f.endTime)
	if err != nil {
		return durationError(err)
	}

	durations, err := timecalc.Calculate(start, end, policy)
	if err != nil {
		return durationError(err)
	}

	e.Date = date
	e.StartTime = start
	e.EndTime = end
	e.Category = category
	e.IsOutside = f.isOutside
	e.Gratuity = f.gratuity
	e.Description = strings.TrimSpace(f.description)
	e.GrossMinutes = durations.GrossMinutes
	e.BreakMinutes = durations.BreakMinutes
	e.NetMinutes = durations.NetMinutes
	return nil
}

func (s *EntryServiceImpl) ensureEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	return nil
}

func (s *EntryServiceImpl) newEntry(employeeID string) (entry.TimeEntry, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return entry.TimeEntry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}
	return entry.TimeEntry{
		ID:         id.String(),
		EmployeeID: employeeID,
		CreatedAt:  integrity.NormalizeTimestamp(s.now()),
	}, nil
}

// CreateEntry implements entry.EntryService.
func (s *EntryServiceImpl) CreateEntry(ctx context.Context, req entry.CreateEntryRequest) (entry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return entry.EntryResponse{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return entry.EntryResponse{}, err
	}

	policy, err := s.settingService.BreakPolicy(ctx)
	if err != nil {
		return entry.EntryResponse{}, err
	}
	secret, err := s.settingService.Secret(ctx)
	if err != nil {
		return entry.EntryResponse{}, err
	}

	e, err := s.newEntry(req.EmployeeID)
	if err != nil {
		return entry.EntryResponse{}, err
	}
	if err := apply(&e, mutableFields{
		date:        req.Date,
		startTime:   req.StartTime,
		endTime:     req.EndTime,
		category:    req.Category,
		isOutside:   req.IsOutside,
		gratuity:    req.Gratuity,
		description: req.Description,
	}, policy); err != nil {
		return entry.EntryResponse{}, err
	}
	e.IntegrityHash = integrity.Stamp(secret, e.IntegrityFields())

	created, err := s.entryRepo.Create(ctx, e)
	if err != nil {
		slog.Error("Failed to create entry", "employee_id", req.EmployeeID, "error", err)
		return entry.EntryResponse{}, err
	}

	s.metrics.RecordEntryWrite("create")
	slog.Info("Entry created", "entry_id", created.ID, "employee_id", created.EmployeeID, "net_minutes", created.NetMinutes)
	return entry.NewEntryResponse(created), nil
}

// UpdateEntry implements entry.EntryService.
func (s *EntryServiceImpl) UpdateEntry(ctx context.Context, req entry.UpdateEntryRequest) (entry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return entry.EntryResponse{}, err
	}

	policy, err := s.settingService.BreakPolicy(ctx)
	if err != nil {
		return entry.EntryResponse{}, err
	}
	secret, err := s.settingService.Secret(ctx)
	if err != nil {
		return entry.EntryResponse{}, err
	}

	var updated entry.TimeEntry
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.entryRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		// employee and creation time stay as stored; both are hashed.
		next := existing
		if err := apply(&next, mutableFields{
			date:        req.Date,
			startTime:   req.StartTime,
			endTime:     req.EndTime,
			category:    req.Category,
			isOutside:   req.IsOutside,
			gratuity:    req.Gratuity,
			description: req.Description,
		}, policy); err != nil {
			return err
		}
		next.IntegrityHash = integrity.Stamp(secret, next.IntegrityFields())

		updated, err = s.entryRepo.Update(txCtx, next)
		return err
	})
	if err != nil {
		return entry.EntryResponse{}, err
	}

	s.metrics.RecordEntryWrite("update")
	slog.Info("Entry updated", "entry_id", updated.ID, "net_minutes", updated.NetMinutes)
	return entry.NewEntryResponse(updated), nil
}

// DeleteEntry implements entry.EntryService.
func (s *EntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.RecordEntryWrite("delete")
	slog.Info("Entry deleted", "entry_id", id)
	return nil
}

// GetEntry implements entry.EntryService.
func (s *EntryServiceImpl) GetEntry(ctx context.Context, id string) (entry.EntryResponse, error) {
	e, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return entry.EntryResponse{}, err
	}
	return entry.NewEntryResponse(e), nil
}

// ListEntries implements entry.EntryService.
func (s *EntryServiceImpl) ListEntries(ctx context.Context, req entry.ListEntriesRequest) ([]entry.EntryResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]entry.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, entry.NewEntryResponse(e))
	}
	return responses, nil
}

// VerifyEntry implements entry.EntryService.
func (s *EntryServiceImpl) VerifyEntry(ctx context.Context, id string) (entry.IntegrityCheckResponse, error) {
	e, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return entry.IntegrityCheckResponse{}, err
	}
	secret, err := s.settingService.Secret(ctx)
	if err != nil {
		return entry.IntegrityCheckResponse{}, err
	}

	valid := integrity.Verify(secret, e.IntegrityFields(), e.IntegrityHash)
	if !valid {
		slog.Warn("Entry failed integrity check", "entry_id", e.ID, "employee_id", e.EmployeeID)
	}

	return entry.IntegrityCheckResponse{
		EntryID:   e.ID,
		Valid:     valid,
		CheckedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

// SweepIntegrity implements entry.EntryService.
func (s *EntryServiceImpl) SweepIntegrity(ctx context.Context) (entry.IntegritySweepResult, error) {
	secret, err := s.settingService.Secret(ctx)
	if err != nil {
		return entry.IntegritySweepResult{}, err
	}
	entries, err := s.entryRepo.List(ctx, entry.ListFilter{})
	if err != nil {
		return entry.IntegritySweepResult{}, err
	}

	result := entry.IntegritySweepResult{MismatchedIDs: make([]string, 0)}
	for _, e := range entries {
		result.Checked++
		if !integrity.Verify(secret, e.IntegrityFields(), e.IntegrityHash) {
			result.Mismatches++
			result.MismatchedIDs = append(result.MismatchedIDs, e.ID)
			slog.Warn("Entry failed integrity check", "entry_id", e.ID, "employee_id", e.EmployeeID, "date", e.Date.Format("2006-01-02"))
		}
	}

	s.metrics.RecordIntegritySweep(result.Checked, result.Mismatches)
	slog.Info("Integrity sweep finished", "checked", result.Checked, "mismatches", result.Mismatches)
	return result, nil
}

// ImportRecords implements entry.EntryService. Records are applied one by one;
// a failing record does not stop the import.
func (s *EntryServiceImpl) ImportRecords(ctx context.Context, req entry.ImportRecordsRequest) (entry.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return entry.ImportResult{}, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return entry.ImportResult{}, err
	}

	policy, err := s.settingService.BreakPolicy(ctx)
	if err != nil {
		return entry.ImportResult{}, err
	}
	secret, err := s.settingService.Secret(ctx)
	if err != nil {
		return entry.ImportResult{}, err
	}

	result := entry.ImportResult{Errors: make([]string, 0)}
	for i, rec := range req.Records {
		inserted, err := s.importRecord(ctx, req.EmployeeID, rec, policy, secret)
		if err != nil {
			result.ErrorCount++
			if len(result.Errors) < maxImportErrors {
				result.Errors = append(result.Errors, fmt.Sprintf("record %d (%s): %v", i+1, rec.Date, err))
			}
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		s.metrics.RecordEntryWrite("import")
	}

	slog.Info("Records imported",
		"employee_id", req.EmployeeID,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"errors", result.ErrorCount,
	)
	return result, nil
}

func (s *EntryServiceImpl) importRecord(
	ctx context.Context,
	employeeID string,
	rec entry.ImportRecord,
	policy timecalc.BreakPolicy,
	secret string,
) (bool, error) {
	date, ok := validator.IsValidDate(rec.Date)
	if !ok {
		return false, fmt.Errorf("date must be in YYYY-MM-DD format")
	}

	category := entry.GuessCategory(rec.Description)
	if rec.Category != nil && *rec.Category != "" {
		c, err := entry.ParseCategory(*rec.Category)
		if err != nil {
			return false, err
		}
		category = c
	}

	inserted := false
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.entryRepo.GetByEmployeeAndDate(txCtx, employeeID, date)
		switch {
		case err == nil:
		case errors.Is(err, entry.ErrEntryNotFound):
			inserted = true
			existing, err = s.newEntry(employeeID)
			if err != nil {
				return err
			}
		default:
			return err
		}

		gratuity := existing.Gratuity
		if rec.Gratuity != nil {
			gratuity = *rec.Gratuity
		}

		next := existing
		if err := apply(&next, mutableFields{
			date:        rec.Date,
			startTime:   rec.StartTime,
			endTime:     rec.EndTime,
			category:    string(category),
			isOutside:   category == entry.CategoryOutdoorRound,
			gratuity:    gratuity,
			description: rec.Description,
		}, policy); err != nil {
			return err
		}

		// Explicit hours from the source sheet win over computed durations.
		if rec.Hours != nil && *rec.Hours > 0 {
			next.NetMinutes = int(math.Round(*rec.Hours * 60))
			next.GrossMinutes = next.NetMinutes
			next.BreakMinutes = 0
		}

		next.IntegrityHash = integrity.Stamp(secret, next.IntegrityFields())

		if inserted {
			_, err = s.entryRepo.Create(txCtx, next)
		} else {
			_, err = s.entryRepo.Update(txCtx, next)
		}
		return err
	})

	return inserted, err
}
