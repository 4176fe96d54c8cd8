package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
)

const auditColumns = `id, ts, action, table_name, record_id, actor, before, after`

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

func marshalSnapshot(s audit.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func unmarshalSnapshot(b []byte) (audit.Snapshot, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var s audit.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Append implements audit.AuditRepository.
func (r *auditRepositoryImpl) Append(ctx context.Context, record audit.AuditRecord) error {
	q := GetQuerier(ctx, r.db)

	before, err := marshalSnapshot(record.Before)
	if err != nil {
		return fmt.Errorf("encode before snapshot: %w", err)
	}
	after, err := marshalSnapshot(record.After)
	if err != nil {
		return fmt.Errorf("encode after snapshot: %w", err)
	}

	query := `
		INSERT INTO audit_log (id, ts, action, table_name, record_id, actor, before, after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := q.Exec(ctx, query,
		record.ID, record.Timestamp, record.Action, record.Table, record.RecordID, record.Actor, before, after,
	); err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// Recent implements audit.AuditRepository.
func (r *auditRepositoryImpl) Recent(ctx context.Context, limit int) ([]audit.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log ORDER BY ts DESC, id DESC LIMIT $1`
	return r.query(ctx, query, limit)
}

// ForRecord implements audit.AuditRepository.
func (r *auditRepositoryImpl) ForRecord(ctx context.Context, table, recordID string) ([]audit.AuditRecord, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE table_name = $1 AND record_id = $2 ORDER BY ts DESC, id DESC`
	return r.query(ctx, query, table, recordID)
}

func (r *auditRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]audit.AuditRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	records := make([]audit.AuditRecord, 0)
	for rows.Next() {
		var rec audit.AuditRecord
		var before, after []byte
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Action, &rec.Table, &rec.RecordID, &rec.Actor, &before, &after,
		); err != nil {
			return nil, err
		}
		if rec.Before, err = unmarshalSnapshot(before); err != nil {
			return nil, fmt.Errorf("decode before snapshot of %s: %w", rec.ID, err)
		}
		if rec.After, err = unmarshalSnapshot(after); err != nil {
			return nil, fmt.Errorf("decode after snapshot of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
