package http

import (
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetWeekdayPattern(w http.ResponseWriter, r *http.Request)
	GetPeriodBaseline(w http.ResponseWriter, r *http.Request)
	GetTaskIntervals(w http.ResponseWriter, r *http.Request)
	ExportTimesheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	exportService report.ExportService
}

func NewReportHandler(reportService report.ReportService, exportService report.ExportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		exportService: exportService,
	}
}

// GetWeekdayPattern handles GET /stats/weekday-pattern?employee_id=
func (h *reportHandlerImpl) GetWeekdayPattern(w http.ResponseWriter, r *http.Request) {
	req := report.WeekdayPatternRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
	}

	result, err := h.reportService.WeekdayPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPeriodBaseline handles GET /stats/period-baseline?from=&to=&employee_id=
func (h *reportHandlerImpl) GetPeriodBaseline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.PeriodBaselineRequest{
		EmployeeID: q.Get("employee_id"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	}

	result, err := h.reportService.PeriodBaseline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTaskIntervals handles GET /stats/task-intervals?category=&employee_id=
func (h *reportHandlerImpl) GetTaskIntervals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.TaskIntervalsRequest{
		EmployeeID: q.Get("employee_id"),
		Category:   q.Get("category"),
	}

	result, err := h.reportService.TaskIntervals(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportTimesheet handles GET /exports/timesheet?month=&employee_id=
func (h *reportHandlerImpl) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.TimesheetExportRequest{
		Month:      q.Get("month"),
		EmployeeID: q.Get("employee_id"),
	}

	file, err := h.exportService.ExportTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.ContentType, file.Filename, file.Content.Bytes())
}
