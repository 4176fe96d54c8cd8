package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/integrity"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryOutdoorRound   Category = "outdoor_round"
	CategoryOffice         Category = "office"
	CategorySickLeave      Category = "sick_leave"
	CategoryVacation       Category = "vacation"
	CategoryCompanyClosure Category = "company_closure"
	CategoryTraining       Category = "training"
	CategoryPublicHoliday  Category = "public_holiday"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryOutdoorRound,
	CategoryOffice,
	CategorySickLeave,
	CategoryVacation,
	CategoryCompanyClosure,
	CategoryTraining,
	CategoryPublicHoliday,
}

var categoryLabels = map[Category]string{
	CategoryOutdoorRound:   "Outdoor round",
	CategoryOffice:         "Office",
	CategorySickLeave:      "Sick leave",
	CategoryVacation:       "Vacation",
	CategoryCompanyClosure: "Company closure",
	CategoryTraining:       "Training",
	CategoryPublicHoliday:  "Public holiday",
}

// ParseCategory rejects anything outside the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type TimeEntry struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	Date          time.Time
	StartTime     *string
	EndTime       *string
	Category      Category
	IsOutside     bool
	Gratuity      decimal.Decimal
	Description   string
	GrossMinutes  int
	BreakMinutes  int
	NetMinutes    int
	IntegrityHash string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IntegrityFields returns the fields covered by the integrity hash.
func (e TimeEntry) IntegrityFields() integrity.Fields {
	return integrity.Fields{
		EmployeeID: e.EmployeeID,
		Date:       e.Date,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Category:   string(e.Category),
		IsOutside:  e.IsOutside,
		Gratuity:   e.Gratuity,
		CreatedAt:  e.CreatedAt,
	}
}

// Hours is the net worked time in hours.
func (e TimeEntry) Hours() float64 {
	return float64(e.NetMinutes) / 60
}
