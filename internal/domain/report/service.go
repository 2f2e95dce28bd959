package report

import (
	"context"
	"io"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
)

// ReportService computes payroll reports on demand from current records.
type ReportService interface {
	MonthlyPayroll(ctx context.Context, tenantID string, req PeriodRequest) (MonthlyPayrollReport, error)
	WorkerPayroll(ctx context.Context, tenantID, workerID string, req PeriodRequest) (WorkerPayrollReport, error)
	// WorkerStats over period; a zero period covers every record of the worker.
	WorkerStats(ctx context.Context, tenantID, workerID string, period calendar.Period) (WorkerStatsReport, error)
	Daily(ctx context.Context, tenantID string, date time.Time) (DailyReport, error)
	Dashboard(ctx context.Context, tenantID string, today time.Time) (DashboardSummary, error)
	ExportPayrollCSV(ctx context.Context, tenantID string, req PeriodRequest, w io.Writer) error
}
