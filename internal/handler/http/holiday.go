package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// List implements HolidayHandler. Without ?year every holiday is returned.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)

	var period calendar.Period
	if query.has("year") {
		period = calendar.YearPeriod(query.intOr("year", time.Now().Year()))
	}

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.holidayService.List(ctx, middleware.TenantID(ctx), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results)
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode holiday request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.holidayService.Create(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

// Update implements HolidayHandler.
func (h *holidayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req holiday.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode holiday request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.Update(r.Context(), middleware.TenantID(r.Context()), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated successfully", result)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.holidayService.Delete(r.Context(), middleware.TenantID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}
