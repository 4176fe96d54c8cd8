package audit

import "context"

type AuditRepository interface {
	Append(ctx context.Context, record AuditRecord) error
	Recent(ctx context.Context, limit int) ([]AuditRecord, error)
	ForRecord(ctx context.Context, table, recordID string) ([]AuditRecord, error)
}
