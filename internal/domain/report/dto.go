package report

import (
	"fmt"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/payroll"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PERIOD
// ========================================

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate accepts years from 2000 up to one past the year of now.
func (r *PeriodRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := now.Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r PeriodRequest) Period() calendar.Period {
	return calendar.MonthPeriod(r.Year, r.Month)
}

// ========================================
// MONTHLY PAYROLL
// ========================================

type MonthlyPayrollReport struct {
	PeriodMonth     int                           `json:"period_month"`
	PeriodYear      int                           `json:"period_year"`
	GeneratedAt     string                        `json:"generated_at"`
	WorkingDays     int                           `json:"working_days"`
	Holidays        []holiday.HolidayResponse     `json:"holidays"`
	InactiveWorkers int                           `json:"inactive_workers"`
	Summary         payroll.RosterSummaryResponse `json:"summary"`
}

// PayrollCSVRow is one line of the payroll export.
type PayrollCSVRow struct {
	WorkerName       string `csv:"Worker Name"`
	DailyWage        string `csv:"Daily Wage"`
	PresentDays      int    `csv:"Present Days"`
	AbsentDays       int    `csv:"Absent Days"`
	LeaveDays        int    `csv:"Leave Days"`
	OvertimeHours    string `csv:"Overtime Hours"`
	BaseSalary       string `csv:"Base Salary"`
	OvertimePay      string `csv:"Overtime Pay"`
	GrossSalary      string `csv:"Gross Salary"`
	AdvanceDeduction string `csv:"Advance Deduction"`
	NetSalary        string `csv:"Net Salary"`
}

func NewPayrollCSVRow(r payroll.PayrollResultResponse) PayrollCSVRow {
	return PayrollCSVRow{
		WorkerName:       r.WorkerName,
		DailyWage:        r.DailyWage.StringFixed(payroll.MoneyPlaces),
		PresentDays:      r.PresentDays,
		AbsentDays:       r.AbsentDays,
		LeaveDays:        r.LeaveDays,
		OvertimeHours:    r.OvertimeHours.String(),
		BaseSalary:       r.BaseSalary.StringFixed(payroll.MoneyPlaces),
		OvertimePay:      r.OvertimePay.StringFixed(payroll.MoneyPlaces),
		GrossSalary:      r.GrossSalary.StringFixed(payroll.MoneyPlaces),
		AdvanceDeduction: r.AdvanceTotal.StringFixed(payroll.MoneyPlaces),
		NetSalary:        r.NetSalary.StringFixed(payroll.MoneyPlaces),
	}
}

// ========================================
// WORKER
// ========================================

type WorkerPayrollReport struct {
	PeriodMonth int                           `json:"period_month"`
	PeriodYear  int                           `json:"period_year"`
	Worker      worker.WorkerResponse         `json:"worker"`
	Payroll     payroll.PayrollResultResponse `json:"payroll"`
	Advances    []advance.AdvanceResponse     `json:"advances"`
}

type WorkerStatsReport struct {
	Worker worker.WorkerResponse       `json:"worker"`
	Period string                      `json:"period"`
	Stats  payroll.WorkerStatsResponse `json:"stats"`
}

// ========================================
// DAILY / DASHBOARD
// ========================================

type DailyReport struct {
	payroll.DailyStatsResponse
	ActiveWorkers int     `json:"active_workers"`
	NotMarked     int     `json:"not_marked"`
	IsHoliday     bool    `json:"is_holiday"`
	HolidayName   *string `json:"holiday_name,omitempty"`
	IsWeekend     bool    `json:"is_weekend"`
}

type MonthOverview struct {
	PeriodMonth            int             `json:"period_month"`
	PeriodYear             int             `json:"period_year"`
	WorkingDays            int             `json:"working_days"`
	TotalPresentDays       int             `json:"total_present_days"`
	TotalOvertimeHours     decimal.Decimal `json:"total_overtime_hours"`
	TotalGrossSalary       decimal.Decimal `json:"total_gross_salary"`
	TotalAdvances          decimal.Decimal `json:"total_advances"`
	TotalNetSalary         decimal.Decimal `json:"total_net_salary"`
	AverageDailyAttendance float64         `json:"average_daily_attendance"`
}

type DashboardSummary struct {
	ActiveWorkers   int                      `json:"active_workers"`
	InactiveWorkers int                      `json:"inactive_workers"`
	PendingAdvances decimal.Decimal          `json:"pending_advances"`
	Today           DailyReport              `json:"today"`
	Month           MonthOverview            `json:"month"`
	UpcomingHoliday *holiday.HolidayResponse `json:"upcoming_holiday,omitempty"`
}
