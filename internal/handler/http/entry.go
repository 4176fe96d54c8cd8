package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/entry"
	"github.com/cmlabs-hris/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EntryHandler interface {
	ListEntries(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	CreateEntry(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	VerifyEntry(w http.ResponseWriter, r *http.Request)
	ImportRecords(w http.ResponseWriter, r *http.Request)
}

type entryHandlerImpl struct {
	entryService entry.EntryService
}

func NewEntryHandler(entryService entry.EntryService) EntryHandler {
	return &entryHandlerImpl{
		entryService: entryService,
	}
}

// ListEntries handles GET /entries?employee_id=&month=&from=&to=&category=
func (h *entryHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := entry.ListEntriesRequest{
		EmployeeID: q.Get("employee_id"),
		Month:      q.Get("month"),
		From:       q.Get("from"),
		To:         q.Get("to"),
		Category:   q.Get("category"),
	}

	result, err := h.entryService.ListEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEntry implements EntryHandler
func (h *entryHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	result, err := h.entryService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEntry implements EntryHandler
func (h *entryHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entry.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create entry request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.entryService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry created successfully", result)
}

// UpdateEntry implements EntryHandler
func (h *entryHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	var req entry.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update entry request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.entryService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry updated successfully", result)
}

// DeleteEntry implements EntryHandler
func (h *entryHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted successfully", nil)
}

// VerifyEntry handles GET /entries/{id}/integrity
func (h *entryHandlerImpl) VerifyEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	result, err := h.entryService.VerifyEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ImportRecords handles POST /entries/import
func (h *entryHandlerImpl) ImportRecords(w http.ResponseWriter, r *http.Request) {
	var req entry.ImportRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode import request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.entryService.ImportRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Records imported", result)
}
