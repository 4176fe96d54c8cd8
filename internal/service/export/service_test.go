package export

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/setting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	annaID = "01957a3c-0000-7000-8000-0000000000a1"
	bertID = "01957a3c-0000-7000-8000-0000000000b2"
)

type stubEntryRepo struct {
	entry.EntryRepository
	entries []entry.TimeEntry
	filter  entry.ListFilter
}

func (r *stubEntryRepo) List(ctx context.Context, f entry.ListFilter) ([]entry.TimeEntry, error) {
	r.filter = f
	var out []entry.TimeEntry
	for _, e := range r.entries {
		if f.EmployeeID == nil || *f.EmployeeID == e.EmployeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (r stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r stubEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return r.employees, nil
}

type stubSettings struct {
	setting.SettingService
}

func (stubSettings) AllowanceRate(ctx context.Context) (decimal.Decimal, error) {
	return setting.DefaultDailyAllowanceRate, nil
}

func strPtr(s string) *string { return &s }

func newTestService() (*ExportServiceImpl, *stubEntryRepo) {
	entries := &stubEntryRepo{entries: []entry.TimeEntry{
		{
			ID:          "e1",
			EmployeeID:  annaID,
			Date:        time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:   strPtr("05:00"),
			EndTime:     strPtr("13:00"),
			Category:    entry.CategoryOutdoorRound,
			Gratuity:    decimal.RequireFromString("2.50"),
			Description: "Spf Umg",
			NetMinutes:  450,
		},
		{
			ID:         "e2",
			EmployeeID: bertID,
			Date:       time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			Category:   entry.CategorySickLeave,
		},
	}}
	employees := stubEmployeeRepo{employees: []employee.Employee{
		{ID: annaID, Name: "Anna Muster"},
		{ID: bertID, Name: "Bert"},
	}}
	svc := NewExportService(entries, employees, stubSettings{}, nil).(*ExportServiceImpl)
	return svc, entries
}

func raw(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestExportTimesheetSingleEmployee(t *testing.T) {
	svc, repo := newTestService()

	file, err := svc.ExportTimesheet(context.Background(), report.TimesheetExportRequest{Month: "2025-03", EmployeeID: annaID})
	require.NoError(t, err)
	assert.Equal(t, "timesheet-2025-03-Anna_Muster.xlsx", file.Filename)
	assert.Equal(t, xlsxContentType, file.ContentType)

	require.NotNil(t, repo.filter.From)
	assert.Equal(t, "2025-03-01", repo.filter.From.Format("2006-01-02"))
	assert.Equal(t, "2025-03-31", repo.filter.To.Format("2006-01-02"))

	f, err := excelize.OpenReader(file.Content)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Anna Muster"}, f.GetSheetList())
	sheet := "Anna Muster"

	assert.Equal(t, "Anna Muster", raw(t, f, sheet, "C2"))
	assert.Equal(t, "Day", raw(t, f, sheet, "A5"))

	// 2025-03-01 is on row 6, so 2025-03-03 is on row 8
	assert.Equal(t, "Sat", raw(t, f, sheet, "A6"))
	assert.Equal(t, "03.03.2025", raw(t, f, sheet, "B8"))
	assert.Equal(t, "Spf Umg", raw(t, f, sheet, "C8"))
	assert.Equal(t, "05:00", raw(t, f, sheet, "D8"))
	assert.Equal(t, "7.5", raw(t, f, sheet, "F8"))
	assert.Equal(t, "9.53", raw(t, f, sheet, "G8"))

	// 31 day rows, then the totals
	assert.Equal(t, "31.03.2025", raw(t, f, sheet, "B36"))
	assert.Equal(t, "Total", raw(t, f, sheet, "A37"))
	assert.Equal(t, "7.5", raw(t, f, sheet, "F37"))
	assert.Equal(t, "9.53", raw(t, f, sheet, "G37"))
	assert.Equal(t, "2.5", raw(t, f, sheet, "H37"))
}

func TestExportTimesheetAllEmployees(t *testing.T) {
	svc, _ := newTestService()

	file, err := svc.ExportTimesheet(context.Background(), report.TimesheetExportRequest{Month: "2025-03"})
	require.NoError(t, err)
	assert.Equal(t, "timesheet-2025-03.xlsx", file.Filename)

	f, err := excelize.OpenReader(file.Content)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Anna Muster", "Bert"}, f.GetSheetList())
	assert.Equal(t, "Sick leave", raw(t, f, "Bert", "C9"))
	assert.Equal(t, "", raw(t, f, "Bert", "F9"))
	assert.Equal(t, "0", raw(t, f, "Bert", "F37"))
}

func TestExportTimesheetUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ExportTimesheet(context.Background(), report.TimesheetExportRequest{
		Month:      "2025-03",
		EmployeeID: "01957a3c-0000-7000-8000-0000000000ff",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportTimesheetRequiresMonth(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ExportTimesheet(context.Background(), report.TimesheetExportRequest{Month: "03/2025"})
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	used := make(map[string]bool)

	assert.Equal(t, "Anna_Muster", sheetName("Anna/Muster", used))
	assert.Equal(t, "Anna_Muster (2)", sheetName("anna/muster", used))
	assert.Equal(t, "Employee", sheetName("  ", used))

	long := sheetName("Maximilian Alexander von Habsburg-Lothringen", used)
	assert.LessOrEqual(t, len(long), maxSheetName)
}

func TestWriteTimesheetReturnsCellErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newSheetStyles(f)
	require.NoError(t, err)
	st.title = -1

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	err = writeTimesheet(f, "Sheet1", st, employee.Employee{Name: "Anna"}, from, to, nil, decimal.NewFromInt(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to write sheet "Sheet1"`)
}
