package employee

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
)

// TableName is the subject table recorded in the audit trail.
const TableName = "employees"

type Employee struct {
	ID           string
	Name         string
	FirstName    string
	LastName     string
	BirthDate    *time.Time
	IsAdmin      bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot returns the audited fields. The password hash is never included, only
// whether one is set.
func (e Employee) Snapshot() audit.Snapshot {
	var birthDate any
	if e.BirthDate != nil {
		birthDate = e.BirthDate.Format("2006-01-02")
	}
	return audit.Snapshot{
		"name":         e.Name,
		"first_name":   e.FirstName,
		"last_name":    e.LastName,
		"birth_date":   birthDate,
		"is_admin":     e.IsAdmin,
		"has_password": e.PasswordHash != nil,
	}
}
