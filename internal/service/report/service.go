package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/metrics"
)

type ReportServiceImpl struct {
	entryRepo entry.EntryRepository
	metrics   *metrics.WorklogMetrics
}

func NewReportService(entryRepo entry.EntryRepository, m *metrics.WorklogMetrics) report.ReportService {
	return &ReportServiceImpl{
		entryRepo: entryRepo,
		metrics:   m,
	}
}

// WeekdayPattern implements report.ReportService.
func (s *ReportServiceImpl) WeekdayPattern(ctx context.Context, req report.WeekdayPatternRequest) (result report.WeekdayPatternReport, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordReport(metrics.ReportWeekdayPattern, started, err) }()

	if err = req.Validate(); err != nil {
		return report.WeekdayPatternReport{}, err
	}

	entries, err := s.entryRepo.List(ctx, entry.ListFilter{
		EmployeeID: req.EmployeeFilter(),
		Categories: []entry.Category{entry.CategorySickLeave, entry.CategoryVacation},
	})
	if err != nil {
		slog.Error("Failed to load entries for weekday pattern", "error", err)
		return report.WeekdayPatternReport{}, err
	}

	return BuildWeekdayPatterns(entries), nil
}

// PeriodBaseline implements report.ReportService.
func (s *ReportServiceImpl) PeriodBaseline(ctx context.Context, req report.PeriodBaselineRequest) (result report.PeriodBaselineReport, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordReport(metrics.ReportPeriodBaseline, started, err) }()

	if err = req.Validate(); err != nil {
		return report.PeriodBaselineReport{}, err
	}
	from, to := req.Range()

	// The baseline spans the whole history, so no date filter here.
	entries, err := s.entryRepo.List(ctx, entry.ListFilter{EmployeeID: req.EmployeeFilter()})
	if err != nil {
		slog.Error("Failed to load entries for period baseline", "error", err)
		return report.PeriodBaselineReport{}, err
	}

	return BuildPeriodBaseline(entries, from, to, req.EmployeeFilter()), nil
}

// TaskIntervals implements report.ReportService.
func (s *ReportServiceImpl) TaskIntervals(ctx context.Context, req report.TaskIntervalsRequest) (result report.TaskIntervalReport, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordReport(metrics.ReportTaskIntervals, started, err) }()

	if err = req.Validate(); err != nil {
		return report.TaskIntervalReport{}, err
	}
	category, err := entry.ParseCategory(req.Category)
	if err != nil {
		return report.TaskIntervalReport{}, err
	}

	entries, err := s.entryRepo.List(ctx, entry.ListFilter{
		EmployeeID: req.EmployeeFilter(),
		Categories: []entry.Category{category},
	})
	if err != nil {
		slog.Error("Failed to load entries for task intervals", "error", err)
		return report.TaskIntervalReport{}, err
	}

	return BuildTaskIntervals(entries, category), nil
}
