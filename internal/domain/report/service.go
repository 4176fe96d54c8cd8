package report

import "context"

// ReportService computes analytic reports from the current entries.
// Nothing is cached or persisted.
type ReportService interface {
	WeekdayPattern(ctx context.Context, req WeekdayPatternRequest) (WeekdayPatternReport, error)
	PeriodBaseline(ctx context.Context, req PeriodBaselineRequest) (PeriodBaselineReport, error)
	TaskIntervals(ctx context.Context, req TaskIntervalsRequest) (TaskIntervalReport, error)
}

// ExportService renders timesheets for download
type ExportService interface {
	ExportTimesheet(ctx context.Context, req TimesheetExportRequest) (TimesheetFile, error)
}
