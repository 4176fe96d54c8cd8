package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/metrics"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var columns = []struct {
	title string
	width float64
}{
	{"Day", 6},
	{"Date", 12},
	{"Description", 40},
	{"Start", 8},
	{"End", 8},
	{"Hours", 9},
	{"Allowance", 11},
	{"Gratuity", 11},
}

var weekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type ExportServiceImpl struct {
	entryRepo      entry.EntryRepository
	employeeRepo   employee.EmployeeRepository
	settingService setting.SettingService
	metrics        *metrics.WorklogMetrics
}

func NewExportService(
	entryRepo entry.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	settingService setting.SettingService,
	m *metrics.WorklogMetrics,
) report.ExportService {
	return &ExportServiceImpl{
		entryRepo:      entryRepo,
		employeeRepo:   employeeRepo,
		settingService: settingService,
		metrics:        m,
	}
}

// ExportTimesheet implements report.ExportService. The workbook holds one sheet per
// employee listing every day of the month; days without entries stay blank.
func (s *ExportServiceImpl) ExportTimesheet(ctx context.Context, req report.TimesheetExportRequest) (file report.TimesheetFile, err error) {
	started := time.Now()
	defer func() { s.metrics.RecordReport(metrics.ReportTimesheet, started, err) }()

	if err = req.Validate(); err != nil {
		return report.TimesheetFile{}, err
	}

	employees, err := s.employees(ctx, req.EmployeeFilter())
	if err != nil {
		return report.TimesheetFile{}, err
	}
	rate, err := s.settingService.AllowanceRate(ctx)
	if err != nil {
		return report.TimesheetFile{}, err
	}

	from := req.MonthStart()
	to := from.AddDate(0, 1, -1)
	entries, err := s.entryRepo.List(ctx, entry.ListFilter{
		EmployeeID: req.EmployeeFilter(),
		From:       &from,
		To:         &to,
	})
	if err != nil {
		slog.Error("Failed to load entries for timesheet export", "month", req.Month, "error", err)
		return report.TimesheetFile{}, err
	}

	byEmployee := make(map[string]map[string][]entry.TimeEntry)
	for _, e := range entries {
		if byEmployee[e.EmployeeID] == nil {
			byEmployee[e.EmployeeID] = make(map[string][]entry.TimeEntry)
		}
		key := e.Date.Format("2006-01-02")
		byEmployee[e.EmployeeID][key] = append(byEmployee[e.EmployeeID][key], e)
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return report.TimesheetFile{}, fmt.Errorf("failed to create workbook styles: %w", err)
	}

	used := make(map[string]bool)
	for i, emp := range employees {
		sheet := sheetName(emp.Name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return report.TimesheetFile{}, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return report.TimesheetFile{}, fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := writeTimesheet(f, sheet, styles, emp, from, to, byEmployee[emp.ID], rate); err != nil {
			return report.TimesheetFile{}, err
		}
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return report.TimesheetFile{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	slog.Info("Timesheet exported", "month", req.Month, "employees", len(employees), "entries", len(entries))
	return report.TimesheetFile{
		Filename:    filename(req.Month, req.EmployeeFilter(), employees),
		ContentType: xlsxContentType,
		Content:     buf,
	}, nil
}

func (s *ExportServiceImpl) employees(ctx context.Context, employeeID *string) ([]employee.Employee, error) {
	if employeeID != nil {
		emp, err := s.employeeRepo.GetByID(ctx, *employeeID)
		if err != nil {
			return nil, err
		}
		return []employee.Employee{emp}, nil
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		// keep one (empty) sheet so the workbook stays valid
		return []employee.Employee{{Name: "Timesheet"}}, nil
	}
	return employees, nil
}

type sheetStyles struct {
	title   int
	header  int
	weekend int
	total   int
	money   int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A3A6B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.weekend, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D0D8E8"}, Pattern: 1},
	}); err != nil {
		return st, err
	}
	if st.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	st.money, err = f.NewStyle(&excelize.Style{NumFmt: 2})
	return st, err
}

func writeTimesheet(
	f *excelize.File,
	sheet string,
	st sheetStyles,
	emp employee.Employee,
	from, to time.Time,
	byDate map[string][]entry.TimeEntry,
	rate decimal.Decimal,
) error {
	for i, c := range columns {
		col := colName(i)
		if err := f.SetColWidth(sheet, col, col, c.width); err != nil {
			return err
		}
	}

	w := &sheetWriter{f: f, sheet: sheet}
	w.value("A1", fmt.Sprintf("Timesheet %s", from.Format("January 2006")))
	w.style("A1", "A1", st.title)
	w.value("A2", "Employee")
	w.value("C2", emp.Name)
	w.value("A3", "Allowance rate")
	w.value("C3", rate.InexactFloat64())

	row := 5
	for i, c := range columns {
		w.value(cell(colName(i), row), c.title)
	}
	w.style(cell("A", row), cell(colName(len(columns)-1), row), st.header)
	row++

	var totalMinutes int
	totalAllowance := decimal.Zero
	totalGratuity := decimal.Zero

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dayEntries := byDate[d.Format("2006-01-02")]
		if len(dayEntries) == 0 {
			dayEntries = []entry.TimeEntry{{}}
		}

		for _, e := range dayEntries {
			w.value(cell("A", row), weekdayShort[d.Weekday()])
			w.value(cell("B", row), d.Format("02.01.2006"))

			if e.ID != "" {
				allowance := decimal.NewFromInt(int64(e.NetMinutes)).Div(decimal.NewFromInt(60)).Mul(rate).Round(2)
				totalMinutes += e.NetMinutes
				totalAllowance = totalAllowance.Add(allowance)
				totalGratuity = totalGratuity.Add(e.Gratuity)

				w.value(cell("C", row), describe(e))
				w.value(cell("D", row), deref(e.StartTime))
				w.value(cell("E", row), deref(e.EndTime))
				if e.NetMinutes > 0 {
					w.value(cell("F", row), e.Hours())
					w.value(cell("G", row), allowance.InexactFloat64())
				}
				if !e.Gratuity.IsZero() {
					w.value(cell("H", row), e.Gratuity.InexactFloat64())
				}
			}

			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				w.style(cell("A", row), cell("H", row), st.weekend)
			} else {
				w.style(cell("F", row), cell("H", row), st.money)
			}
			row++
		}
	}

	w.value(cell("A", row), "Total")
	w.value(cell("F", row), decimal.NewFromInt(int64(totalMinutes)).Div(decimal.NewFromInt(60)).Round(2).InexactFloat64())
	w.value(cell("G", row), totalAllowance.InexactFloat64())
	w.value(cell("H", row), totalGratuity.InexactFloat64())
	w.style(cell("A", row), cell("H", row), st.total)
	if w.err != nil {
		return fmt.Errorf("failed to write sheet %q: %w", sheet, w.err)
	}
	return nil
}

// sheetWriter keeps the first excelize error and skips every write after it.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) value(axis string, v interface{}) {
	if w.err == nil {
		w.err = w.f.SetCellValue(w.sheet, axis, v)
	}
}

func (w *sheetWriter) style(topLeft, bottomRight string, styleID int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, topLeft, bottomRight, styleID)
	}
}

func describe(e entry.TimeEntry) string {
	if e.Description != "" {
		return e.Description
	}
	return e.Category.Label()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func filename(month string, employeeID *string, employees []employee.Employee) string {
	if employeeID != nil && len(employees) == 1 {
		return fmt.Sprintf("timesheet-%s-%s.xlsx", month, sanitize(employees[0].Name))
	}
	return fmt.Sprintf("timesheet-%s.xlsx", month)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
