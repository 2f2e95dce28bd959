package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	domainpayroll "github.com/kaamgar/kaamgar-backend-go/internal/domain/payroll"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/report"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/service/payroll"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	advanceRepo    advance.AdvanceRepository
	holidayRepo    holiday.HolidayRepository
	now            func() time.Time
}

func NewReportService(
	workerRepository worker.WorkerRepository,
	attendanceRepository attendance.AttendanceRepository,
	advanceRepository advance.AdvanceRepository,
	holidayRepository holiday.HolidayRepository,
) report.ReportService {
	return &ReportServiceImpl{
		workerRepo:     workerRepository,
		attendanceRepo: attendanceRepository,
		advanceRepo:    advanceRepository,
		holidayRepo:    holidayRepository,
		now:            time.Now,
	}
}

// snapshot is the tenant data a report is computed from.
type snapshot struct {
	workers  []worker.Worker
	records  []attendance.Attendance
	advances []advance.Advance
	holidays []holiday.Holiday
}

func (s snapshot) holidayDates() []time.Time {
	dates := make([]time.Time, 0, len(s.holidays))
	for _, h := range s.holidays {
		dates = append(dates, h.Date)
	}
	return dates
}

// loadSnapshot fetches workers, attendance, advances and holidays for period in parallel.
// A non-empty workerID narrows attendance and advances to that worker.
func (s *ReportServiceImpl) loadSnapshot(ctx context.Context, tenantID, workerID string, period calendar.Period) (snapshot, error) {
	var snap snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		workers, err := s.workerRepo.List(gCtx, tenantID, worker.WorkerFilter{})
		if err != nil {
			return fmt.Errorf("failed to load workers: %w", err)
		}
		snap.workers = workers
		return nil
	})

	g.Go(func() error {
		filter := attendance.AttendanceFilter{Period: period}
		if workerID != "" {
			filter.WorkerID = &workerID
		}
		records, err := s.attendanceRepo.List(gCtx, tenantID, filter)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		snap.records = records
		return nil
	})

	g.Go(func() error {
		filter := advance.AdvanceFilter{Period: period}
		if workerID != "" {
			filter.WorkerID = &workerID
		}
		advances, err := s.advanceRepo.List(gCtx, tenantID, filter)
		if err != nil {
			return fmt.Errorf("failed to load advances: %w", err)
		}
		snap.advances = advances
		return nil
	})

	g.Go(func() error {
		holidays, err := s.holidayRepo.List(gCtx, tenantID, period)
		if err != nil {
			return fmt.Errorf("failed to load holidays: %w", err)
		}
		snap.holidays = holidays
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// MonthlyPayroll implements report.ReportService.
func (s *ReportServiceImpl) MonthlyPayroll(ctx context.Context, tenantID string, req report.PeriodRequest) (report.MonthlyPayrollReport, error) {
	if err := req.Validate(s.now()); err != nil {
		return report.MonthlyPayrollReport{}, err
	}

	period := req.Period()
	snap, err := s.loadSnapshot(ctx, tenantID, "", period)
	if err != nil {
		return report.MonthlyPayrollReport{}, err
	}

	roster := payroll.ComputeRosterPayroll(snap.workers, period, snap.records, snap.advances)

	holidays := make([]holiday.HolidayResponse, 0, len(snap.holidays))
	for _, h := range snap.holidays {
		holidays = append(holidays, h.ToResponse())
	}

	return report.MonthlyPayrollReport{
		PeriodMonth:     req.Month,
		PeriodYear:      req.Year,
		GeneratedAt:     s.now().UTC().Format(time.RFC3339),
		WorkingDays:     len(calendar.WorkingDaysInMonth(req.Year, req.Month, snap.holidayDates())),
		Holidays:        holidays,
		InactiveWorkers: len(snap.workers) - roster.TotalWorkers,
		Summary:         roster.ToResponse(),
	}, nil
}

// WorkerPayroll implements report.ReportService. Inactive workers are still paid for
// the days they worked.
func (s *ReportServiceImpl) WorkerPayroll(ctx context.Context, tenantID, workerID string, req report.PeriodRequest) (report.WorkerPayrollReport, error) {
	if err := req.Validate(s.now()); err != nil {
		return report.WorkerPayrollReport{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, tenantID, workerID)
	if err != nil {
		return report.WorkerPayrollReport{}, err
	}

	period := req.Period()
	snap, err := s.loadSnapshot(ctx, tenantID, w.ID, period)
	if err != nil {
		return report.WorkerPayrollReport{}, err
	}

	result := payroll.ComputeWorkerPayroll(w, period, snap.records, snap.advances)

	advances := make([]advance.AdvanceResponse, 0, len(snap.advances))
	for _, a := range snap.advances {
		advances = append(advances, a.ToResponse())
	}

	return report.WorkerPayrollReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		Worker:      w.ToResponse(),
		Payroll:     result.ToResponse(),
		Advances:    advances,
	}, nil
}

// WorkerStats implements report.ReportService.
func (s *ReportServiceImpl) WorkerStats(ctx context.Context, tenantID, workerID string, period calendar.Period) (report.WorkerStatsReport, error) {
	w, err := s.workerRepo.GetByID(ctx, tenantID, workerID)
	if err != nil {
		return report.WorkerStatsReport{}, err
	}

	records, err := s.attendanceRepo.List(ctx, tenantID, attendance.AttendanceFilter{WorkerID: &w.ID, Period: period})
	if err != nil {
		return report.WorkerStatsReport{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	return report.WorkerStatsReport{
		Worker: w.ToResponse(),
		Period: period.String(),
		Stats:  payroll.ComputeWorkerStats(w, period, records).ToResponse(),
	}, nil
}

// Daily implements report.ReportService.
func (s *ReportServiceImpl) Daily(ctx context.Context, tenantID string, date time.Time) (report.DailyReport, error) {
	day := calendar.Day(date)
	snap, err := s.loadSnapshot(ctx, tenantID, "", calendar.DayPeriod(day))
	if err != nil {
		return report.DailyReport{}, err
	}
	return dailyReport(snap, day), nil
}

func dailyReport(snap snapshot, day time.Time) report.DailyReport {
	stats := payroll.ComputeDailyStats(snap.records, day)

	marked := make(map[string]bool, len(snap.records))
	for _, r := range snap.records {
		if calendar.Day(r.Date).Equal(day) {
			marked[r.WorkerID] = true
		}
	}

	out := report.DailyReport{
		DailyStatsResponse: stats.ToResponse(),
		IsWeekend:          calendar.IsWeekend(day),
	}
	for _, w := range snap.workers {
		if !w.IsActive() {
			continue
		}
		out.ActiveWorkers++
		if !marked[w.ID] {
			out.NotMarked++
		}
	}
	for _, h := range snap.holidays {
		if calendar.Day(h.Date).Equal(day) {
			name := h.Name
			out.IsHoliday = true
			out.HolidayName = &name
			break
		}
	}
	return out
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, tenantID string, today time.Time) (report.DashboardSummary, error) {
	day := calendar.Day(today)
	year, month := day.Year(), int(day.Month())
	monthPeriod := calendar.MonthPeriod(year, month)

	var (
		counts   map[worker.Status]int
		monthly  snapshot
		pending  []advance.Advance
		upcoming []holiday.Holiday
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Worker headcount
	g.Go(func() error {
		var err error
		counts, err = s.workerRepo.CountByStatus(gCtx, tenantID)
		return err
	})

	// 2. Current month snapshot, today is inside it
	g.Go(func() error {
		var err error
		monthly, err = s.loadSnapshot(gCtx, tenantID, "", monthPeriod)
		return err
	})

	// 3. Outstanding advances of every month
	g.Go(func() error {
		status := advance.StatusPending
		var err error
		pending, err = s.advanceRepo.List(gCtx, tenantID, advance.AdvanceFilter{Status: &status})
		return err
	})

	// 4. Next holiday within a year
	g.Go(func() error {
		var err error
		upcoming, err = s.holidayRepo.List(gCtx, tenantID, calendar.NewPeriod(day, day.AddDate(1, 0, 0)))
		return err
	})

	if err := g.Wait(); err != nil {
		return report.DashboardSummary{}, err
	}

	roster := payroll.ComputeRosterPayroll(monthly.workers, monthPeriod, monthly.records, monthly.advances)

	summary := report.DashboardSummary{
		ActiveWorkers:   counts[worker.StatusActive],
		InactiveWorkers: counts[worker.StatusInactive],
		PendingAdvances: payroll.TotalAllTime(pending, "").Round(domainpayroll.MoneyPlaces),
		Today:           dailyReport(monthly, day),
		Month: report.MonthOverview{
			PeriodMonth:            month,
			PeriodYear:             year,
			WorkingDays:            len(calendar.WorkingDaysInMonth(year, month, monthly.holidayDates())),
			TotalPresentDays:       roster.TotalPresentDays,
			TotalOvertimeHours:     roster.TotalOvertimeHours,
			TotalGrossSalary:       roster.TotalGrossSalary.Round(domainpayroll.MoneyPlaces),
			TotalAdvances:          roster.TotalAdvances.Round(domainpayroll.MoneyPlaces),
			TotalNetSalary:         roster.TotalNetSalary.Round(domainpayroll.MoneyPlaces),
			AverageDailyAttendance: roster.AverageDailyAttendance,
		},
	}
	if len(upcoming) > 0 {
		next := upcoming[0].ToResponse()
		summary.UpcomingHoliday = &next
	}
	return summary, nil
}

// ExportPayrollCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportPayrollCSV(ctx context.Context, tenantID string, req report.PeriodRequest, w io.Writer) error {
	monthly, err := s.MonthlyPayroll(ctx, tenantID, req)
	if err != nil {
		return err
	}

	rows := make([]report.PayrollCSVRow, 0, len(monthly.Summary.Workers))
	for _, result := range monthly.Summary.Workers {
		rows = append(rows, report.NewPayrollCSVRow(result))
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write payroll csv: %w", err)
	}
	return nil
}
