package audit

import "errors"

var (
	ErrAuditWriteFailed = errors.New("audit record could not be written")
	ErrInvalidAction    = errors.New("invalid audit action")
	ErrInvalidSnapshot  = errors.New("audit snapshots do not match the action")
)
