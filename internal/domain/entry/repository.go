package entry

import (
	"context"
	"time"
)

// ListFilter narrows a listing. Zero values mean no restriction. From and To are inclusive.
type ListFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Categories []Category
}

// EntryRepository lists entries ordered by date descending, then employee name.
type EntryRepository interface {
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)
	Update(ctx context.Context, e TimeEntry) (TimeEntry, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (TimeEntry, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (TimeEntry, error)
	List(ctx context.Context, filter ListFilter) ([]TimeEntry, error)
}
