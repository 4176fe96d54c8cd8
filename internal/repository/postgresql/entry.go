package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const entrySelect = `
	SELECT e.id, e.employee_id, emp.name, e.date, e.start_time, e.end_time, e.category, e.is_outside,
		e.gratuity, e.description, e.gross_minutes, e.break_minutes, e.net_minutes,
		e.integrity_hash, e.created_at, e.updated_at
	FROM entries e
	JOIN employees emp ON emp.id = e.employee_id`

type entryRepositoryImpl struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) entry.EntryRepository {
	return &entryRepositoryImpl{db: db}
}

func scanEntry(row pgx.Row) (entry.TimeEntry, error) {
	var e entry.TimeEntry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.EmployeeName, &e.Date, &e.StartTime, &e.EndTime, &e.Category, &e.IsOutside,
		&e.Gratuity, &e.Description, &e.GrossMinutes, &e.BreakMinutes, &e.NetMinutes,
		&e.IntegrityHash, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements entry.EntryRepository.
func (r *entryRepositoryImpl) Create(ctx context.Context, e entry.TimeEntry) (entry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO entries (
			id, employee_id, date, start_time, end_time, category, is_outside, gratuity, description,
			gross_minutes, break_minutes, net_minutes, integrity_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`

	_, err := q.Exec(ctx, query,
		e.ID, e.EmployeeID, e.Date, e.StartTime, e.EndTime, e.Category, e.IsOutside, e.Gratuity, e.Description,
		e.GrossMinutes, e.BreakMinutes, e.NetMinutes, e.IntegrityHash, e.CreatedAt,
	)
	if err != nil {
		return entry.TimeEntry{}, fmt.Errorf("failed to insert entry: %w", err)
	}

	return r.GetByID(ctx, e.ID)
}

// Update implements entry.EntryRepository. employee_id and created_at are never written.
func (r *entryRepositoryImpl) Update(ctx context.Context, e entry.TimeEntry) (entry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE entries
		SET date = $2, start_time = $3, end_time = $4, category = $5, is_outside = $6, gratuity = $7,
			description = $8, gross_minutes = $9, break_minutes = $10, net_minutes = $11,
			integrity_hash = $12, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		e.ID, e.Date, e.StartTime, e.EndTime, e.Category, e.IsOutside, e.Gratuity,
		e.Description, e.GrossMinutes, e.BreakMinutes, e.NetMinutes, e.IntegrityHash,
	)
	if err != nil {
		return entry.TimeEntry{}, fmt.Errorf("failed to update entry with id %s: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return entry.TimeEntry{}, entry.ErrEntryNotFound
	}

	return r.GetByID(ctx, e.ID)
}

// Delete implements entry.EntryRepository.
func (r *entryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return entry.ErrEntryNotFound
	}
	return nil
}

// GetByID implements entry.EntryRepository.
func (r *entryRepositoryImpl) GetByID(ctx context.Context, id string) (entry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEntry(q.QueryRow(ctx, entrySelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.TimeEntry{}, entry.ErrEntryNotFound
		}
		return entry.TimeEntry{}, fmt.Errorf("failed to get entry with id %s: %w", id, err)
	}
	return e, nil
}

// GetByEmployeeAndDate implements entry.EntryRepository. With several entries on
// one day the oldest is returned.
func (r *entryRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (entry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := entrySelect + ` WHERE e.employee_id = $1 AND e.date = $2 ORDER BY e.created_at ASC LIMIT 1`

	e, err := scanEntry(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entry.TimeEntry{}, entry.ErrEntryNotFound
		}
		return entry.TimeEntry{}, fmt.Errorf("failed to get entry for employee %s on %s: %w", employeeID, date.Format("2006-01-02"), err)
	}
	return e, nil
}

// List implements entry.EntryRepository.
func (r *entryRepositoryImpl) List(ctx context.Context, filter entry.ListFilter) ([]entry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("e.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("e.date >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("e.date <= $%d", argIndex))
		args = append(args, *filter.To)
		argIndex++
	}
	if len(filter.Categories) > 0 {
		categories := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			categories[i] = string(c)
		}
		conditions = append(conditions, fmt.Sprintf("e.category = ANY($%d)", argIndex))
		args = append(args, categories)
	}

	query := entrySelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.date DESC, emp.name ASC, e.created_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entry.TimeEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
