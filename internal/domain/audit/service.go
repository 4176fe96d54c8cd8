package audit

import "context"

// AuditService appends and reads the administrative audit trail
type AuditService interface {
	// Record appends one record in the transaction carried by ctx, if any
	Record(ctx context.Context, action Action, table, recordID string, before, after Snapshot) error

	// Recent returns the newest records first, limited by the configured default and maximum
	Recent(ctx context.Context, req RecentAuditRequest) ([]AuditRecordResponse, error)

	// ForRecord returns every record of one subject, newest first
	ForRecord(ctx context.Context, req RecordAuditRequest) ([]AuditRecordResponse, error)
}
