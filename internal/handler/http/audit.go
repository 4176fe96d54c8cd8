package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuditHandler interface {
	ListRecent(w http.ResponseWriter, r *http.Request)
	ListForRecord(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

// ListRecent handles GET /audit?limit=
func (h *auditHandlerImpl) ListRecent(w http.ResponseWriter, r *http.Request) {
	var req audit.RecentAuditRequest
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "invalid limit parameter", nil)
			return
		}
		req.Limit = &limit
	}

	result, err := h.auditService.Recent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListForRecord handles GET /audit/{table}/{id}
func (h *auditHandlerImpl) ListForRecord(w http.ResponseWriter, r *http.Request) {
	req := audit.RecordAuditRequest{
		Table:    chi.URLParam(r, "table"),
		RecordID: chi.URLParam(r, "id"),
	}

	result, err := h.auditService.ForRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
