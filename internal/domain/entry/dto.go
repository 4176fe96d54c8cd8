package entry

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 2000

// maxGratuity is the largest amount a NUMERIC(10,2) column holds.
var maxGratuity = decimal.RequireFromString("99999999.99")

// ValidateGratuity rejects negative amounts and amounts too large to store.
func ValidateGratuity(gratuity decimal.Decimal) validator.ValidationErrors {
	switch {
	case gratuity.IsNegative():
		return validator.ValidationErrors{{Field: "gratuity", Message: "gratuity must not be negative"}}
	case gratuity.Round(2).GreaterThan(maxGratuity):
		return validator.ValidationErrors{{Field: "gratuity", Message: "gratuity must not exceed 99999999.99"}}
	}
	return nil
}

type CreateEntryRequest struct {
	EmployeeID  string          `json:"employee_id"`
	Date        string          `json:"date"`
	StartTime   *string         `json:"start_time,omitempty"`
	EndTime     *string         `json:"end_time,omitempty"`
	Category    string          `json:"category"`
	IsOutside   bool            `json:"is_outside"`
	Gratuity    decimal.Decimal `json:"gratuity"`
	Description string          `json:"description"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	errs = append(errs, validateMutable(r.Date, r.StartTime, r.EndTime, r.Category, r.Gratuity, r.Description)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEntryRequest replaces every mutable field of an entry.
type UpdateEntryRequest struct {
	ID          string          `json:"-"`
	Date        string          `json:"date"`
	StartTime   *string         `json:"start_time,omitempty"`
	EndTime     *string         `json:"end_time,omitempty"`
	Category    string          `json:"category"`
	IsOutside   bool            `json:"is_outside"`
	Gratuity    decimal.Decimal `json:"gratuity"`
	Description string          `json:"description"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	errs = append(errs, validateMutable(r.Date, r.StartTime, r.EndTime, r.Category, r.Gratuity, r.Description)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateMutable(date string, start, end *string, category string, gratuity decimal.Decimal, description string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if start != nil && *start != "" && !validator.IsValidClock(*start) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if end != nil && *end != "" && !validator.IsValidClock(*end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}
	if _, err := ParseCategory(category); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of " + categoryList(),
		})
	}
	if err := ValidateGratuity(gratuity); err != nil {
		errs = append(errs, err...)
	}
	if len(description) > maxDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 2000 characters",
		})
	}

	return errs
}

func categoryList() string {
	s := ""
	for i, c := range Categories {
		if i > 0 {
			s += ", "
		}
		s += string(c)
	}
	return s
}

// ListEntriesRequest holds the query parameters of an entry listing.
// Month (YYYY-MM) and the from/to range are mutually exclusive.
type ListEntriesRequest struct {
	EmployeeID string
	Month      string
	From       string
	To         string
	Category   string
}

func (r *ListEntriesRequest) Validate() error {
	_, err := r.ToFilter()
	return err
}

// ToFilter validates the request and converts it to a repository filter.
func (r *ListEntriesRequest) ToFilter() (ListFilter, error) {
	var errs validator.ValidationErrors
	var filter ListFilter

	if r.EmployeeID != "" {
		if !validator.IsValidUUID(r.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be a valid UUID",
			})
		} else {
			id := r.EmployeeID
			filter.EmployeeID = &id
		}
	}

	if r.Month != "" {
		if r.From != "" || r.To != "" {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month cannot be combined with from/to",
			})
		}
		if m, ok := validator.IsValidMonth(r.Month); ok {
			from := m
			to := m.AddDate(0, 1, -1)
			filter.From, filter.To = &from, &to
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if r.From != "" {
		if d, ok := validator.IsValidDate(r.From); ok {
			filter.From = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if r.To != "" {
		if d, ok := validator.IsValidDate(r.To); ok {
			filter.To = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must not be after to",
		})
	}

	if r.Category != "" {
		if c, err := ParseCategory(r.Category); err == nil {
			filter.Categories = []Category{c}
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "category",
				Message: "category must be one of " + categoryList(),
			})
		}
	}

	if len(errs) > 0 {
		return ListFilter{}, errs
	}
	return filter, nil
}

type EntryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Date          string          `json:"date"`
	StartTime     *string         `json:"start_time"`
	EndTime       *string         `json:"end_time"`
	Category      Category        `json:"category"`
	IsOutside     bool            `json:"is_outside"`
	Gratuity      decimal.Decimal `json:"gratuity"`
	Description   string          `json:"description"`
	GrossMinutes  int             `json:"gross_minutes"`
	BreakMinutes  int             `json:"break_minutes"`
	NetMinutes    int             `json:"net_minutes"`
	IntegrityHash string          `json:"integrity_hash"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func NewEntryResponse(e TimeEntry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		EmployeeName:  e.EmployeeName,
		Date:          e.Date.Format("2006-01-02"),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Category:      e.Category,
		IsOutside:     e.IsOutside,
		Gratuity:      e.Gratuity,
		Description:   e.Description,
		GrossMinutes:  e.GrossMinutes,
		BreakMinutes:  e.BreakMinutes,
		NetMinutes:    e.NetMinutes,
		IntegrityHash: e.IntegrityHash,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type IntegrityCheckResponse struct {
	EntryID   string `json:"entry_id"`
	Valid     bool   `json:"valid"`
	CheckedAt string `json:"checked_at"`
}

type IntegritySweepResult struct {
	Checked       int      `json:"checked"`
	Mismatches    int      `json:"mismatches"`
	MismatchedIDs []string `json:"mismatched_ids"`
}

const maxImportRecords = 1000

// ImportRecord is one already-normalized spreadsheet row.
type ImportRecord struct {
	Date        string           `json:"date"`
	StartTime   *string          `json:"start_time,omitempty"`
	EndTime     *string          `json:"end_time,omitempty"`
	Description string           `json:"description"`
	Category    *string          `json:"category,omitempty"`
	Hours       *float64         `json:"hours,omitempty"`
	Gratuity    *decimal.Decimal `json:"gratuity,omitempty"`
}

type ImportRecordsRequest struct {
	EmployeeID string         `json:"employee_id"`
	Records    []ImportRecord `json:"records"`
}

func (r *ImportRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "records must not be empty",
		})
	}
	if len(r.Records) > maxImportRecords {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "records must not exceed 1000 items",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportResult reports the outcome of an import. Errors holds at most the first ten messages.
type ImportResult struct {
	Inserted   int      `json:"inserted"`
	Updated    int      `json:"updated"`
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors"`
}
