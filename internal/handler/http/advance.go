package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
)

type AdvanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	MonthlyTotal(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &advanceHandlerImpl{
		advanceService: advanceService,
	}
}

// List implements AdvanceHandler.
func (h *advanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)

	filter := advance.AdvanceFilter{
		WorkerID: query.uuid("worker_id"),
		Period:   query.period(time.Now()),
	}
	if status := query.oneOf("status", advance.Statuses); status != nil {
		s := advance.Status(*status)
		filter.Status = &s
	}

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.advanceService.List(ctx, middleware.TenantID(ctx), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results)
}

// Get implements AdvanceHandler.
func (h *advanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.advanceService.GetByID(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements AdvanceHandler.
func (h *advanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req advance.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode advance request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.advanceService.Create(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance recorded successfully", result)
}

// Update implements AdvanceHandler.
func (h *advanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req advance.UpdateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode advance request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.advanceService.Update(r.Context(), middleware.TenantID(r.Context()), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance updated successfully", result)
}

// Cancel implements AdvanceHandler.
func (h *advanceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.advanceService.Cancel(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance cancelled", result)
}

// Delete implements AdvanceHandler.
func (h *advanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.advanceService.Delete(r.Context(), middleware.TenantID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deleted successfully", nil)
}

// MonthlyTotal implements AdvanceHandler.
func (h *advanceHandlerImpl) MonthlyTotal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)
	month := query.month(time.Now())

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	workerID, err := pathID(r, "workerId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.advanceService.MonthlyTotal(ctx, middleware.TenantID(ctx), workerID, month.Year, month.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
