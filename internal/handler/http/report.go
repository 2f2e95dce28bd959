package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/report"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Payroll for the whole active roster, ?month&year
	MonthlyPayroll(w http.ResponseWriter, r *http.Request)
	WorkerPayroll(w http.ResponseWriter, r *http.Request)
	ExportPayrollCSV(w http.ResponseWriter, r *http.Request)

	// Attendance statistics
	WorkerStats(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)

	Dashboard(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		now:           time.Now,
	}
}

// MonthlyPayroll handles GET /reports/payroll
func (h *reportHandlerImpl) MonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)
	req := query.month(h.now())

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.MonthlyPayroll(ctx, middleware.TenantID(ctx), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WorkerPayroll handles GET /reports/payroll/workers/{id}
func (h *reportHandlerImpl) WorkerPayroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)
	req := query.month(h.now())

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.WorkerPayroll(ctx, middleware.TenantID(ctx), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportPayrollCSV handles GET /reports/payroll/export
func (h *reportHandlerImpl) ExportPayrollCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)
	req := query.month(h.now())

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.reportService.ExportPayrollCSV(ctx, middleware.TenantID(ctx), req, &buf); err != nil {
		slog.Error("Payroll export failed", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-%04d-%02d.csv"`, req.Year, req.Month))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write payroll export", "error", err)
	}
}

// WorkerStats handles GET /reports/workers/{id}/stats. Without a month or date range it covers all records.
func (h *reportHandlerImpl) WorkerStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)
	period := query.period(h.now())

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.WorkerStats(ctx, middleware.TenantID(ctx), id, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Daily handles GET /reports/daily
func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := newQueryParams(r)
	date := query.dateOr("date", h.now())

	if err := query.err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Daily(ctx, middleware.TenantID(ctx), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Dashboard handles GET /reports/dashboard
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.reportService.Dashboard(ctx, middleware.TenantID(ctx), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
