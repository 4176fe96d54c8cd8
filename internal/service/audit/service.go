package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
)

type AuditServiceImpl struct {
	auditRepo    audit.AuditRepository
	metrics      *metrics.WorklogMetrics
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewAuditService(auditRepo audit.AuditRepository, m *metrics.WorklogMetrics, defaultLimit, maxLimit int) audit.AuditService {
	return &AuditServiceImpl{
		auditRepo:    auditRepo,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

func validateSnapshots(action audit.Action, before, after audit.Snapshot) error {
	switch action {
	case audit.ActionInsert:
		if before != nil || after == nil {
			return fmt.Errorf("%w: INSERT needs only an after snapshot", audit.ErrInvalidSnapshot)
		}
	case audit.ActionUpdate:
		if before == nil || after == nil {
			return fmt.Errorf("%w: UPDATE needs both snapshots", audit.ErrInvalidSnapshot)
		}
	case audit.ActionDelete:
		if before == nil || after != nil {
			return fmt.Errorf("%w: DELETE needs only a before snapshot", audit.ErrInvalidSnapshot)
		}
	default:
		return fmt.Errorf("%w: %q", audit.ErrInvalidAction, action)
	}
	return nil
}

// Record implements audit.AuditService. Any failure is reported as
// audit.ErrAuditWriteFailed so callers can roll back the mutation.
func (s *AuditServiceImpl) Record(ctx context.Context, action audit.Action, table, recordID string, before, after audit.Snapshot) error {
	err := s.record(ctx, action, table, recordID, before, after)
	s.metrics.RecordAudit(string(action), err)
	if err != nil {
		slog.Error("Failed to write audit record", "action", action, "table", table, "record_id", recordID, "error", err)
		return fmt.Errorf("%w: %w", audit.ErrAuditWriteFailed, err)
	}
	return nil
}

func (s *AuditServiceImpl) record(ctx context.Context, action audit.Action, table, recordID string, before, after audit.Snapshot) error {
	if err := validateSnapshots(action, before, after); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate audit id: %w", err)
	}

	return s.auditRepo.Append(ctx, audit.AuditRecord{
		ID:        id.String(),
		Timestamp: s.now().UTC(),
		Action:    action,
		Table:     table,
		RecordID:  recordID,
		Actor:     audit.ActorFromContext(ctx),
		Before:    before,
		After:     after,
	})
}

// Recent implements audit.AuditService.
func (s *AuditServiceImpl) Recent(ctx context.Context, req audit.RecentAuditRequest) ([]audit.AuditRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	limit := s.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	records, err := s.auditRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return toResponses(records), nil
}

// ForRecord implements audit.AuditService.
func (s *AuditServiceImpl) ForRecord(ctx context.Context, req audit.RecordAuditRequest) ([]audit.AuditRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	records, err := s.auditRepo.ForRecord(ctx, req.Table, req.RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log for %s/%s: %w", req.Table, req.RecordID, err)
	}
	return toResponses(records), nil
}

func toResponses(records []audit.AuditRecord) []audit.AuditRecordResponse {
	responses := make([]audit.AuditRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, audit.NewAuditRecordResponse(r))
	}
	return responses
}
