package audit

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type RecentAuditRequest struct {
	Limit *int
}

func (r *RecentAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Limit != nil && *r.Limit <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordAuditRequest struct {
	Table    string
	RecordID string
}

func (r *RecordAuditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Table) {
		errs = append(errs, validator.ValidationError{
			Field:   "table",
			Message: "table is required",
		})
	}
	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AuditRecordResponse struct {
	ID        string                 `json:"id"`
	Timestamp string                 `json:"ts"`
	Action    Action                 `json:"action"`
	Table     string                 `json:"table_name"`
	RecordID  string                 `json:"record_id"`
	Actor     string                 `json:"actor"`
	Before    Snapshot               `json:"before"`
	After     Snapshot               `json:"after"`
	Changes   map[string]FieldChange `json:"changes"`
}

func NewAuditRecordResponse(r AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		ID:        r.ID,
		Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
		Action:    r.Action,
		Table:     r.Table,
		RecordID:  r.RecordID,
		Actor:     r.Actor,
		Before:    r.Before,
		After:     r.After,
		Changes:   r.Changes(),
	}
}
