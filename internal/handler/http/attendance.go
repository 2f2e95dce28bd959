package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)

	// date takes precedence over month/year and start_date/end_date
	filter := attendance.AttendanceFilter{
		WorkerID: query.uuid("worker_id"),
		Date:     query.date("date"),
	}
	if filter.Date == nil {
		filter.Period = query.period(time.Now())
	}
	if status := query.oneOf("status", attendance.Statuses); status != nil {
		s := attendance.Status(*status)
		filter.Status = &s
	}

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.List(ctx, middleware.TenantID(ctx), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results)
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be a date in YYYY-MM-DD format",
		}})
		return
	}

	results, err := h.attendanceService.ListByDate(ctx, middleware.TenantID(ctx), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results)
}

// Mark implements AttendanceHandler. Marking the same worker and day again overwrites the record.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode attendance request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

// BulkMark implements AttendanceHandler.
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkMarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode bulk attendance request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.BulkMark(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk attendance marked successfully", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), middleware.TenantID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted successfully", nil)
}
