package payroll

import (
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision money is rounded to on the way out. Engine values
// keep full precision.
const MoneyPlaces = 2

type PayrollResultResponse struct {
	WorkerID      string          `json:"worker_id"`
	WorkerName    string          `json:"worker_name"`
	DailyWage     decimal.Decimal `json:"daily_wage"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	PresentDays   int             `json:"present_days"`
	AbsentDays    int             `json:"absent_days"`
	LeaveDays     int             `json:"leave_days"`
	HolidayDays   int             `json:"holiday_days"`
	TotalDays     int             `json:"total_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	AdvanceTotal  decimal.Decimal `json:"advance_total"`
	NetSalary     decimal.Decimal `json:"net_salary"`
}

func (r PayrollResult) ToResponse() PayrollResultResponse {
	return PayrollResultResponse{
		WorkerID:      r.WorkerID,
		WorkerName:    r.WorkerName,
		DailyWage:     r.DailyWage.Round(MoneyPlaces),
		HourlyRate:    r.HourlyRate.Round(MoneyPlaces),
		PresentDays:   r.PresentDays,
		AbsentDays:    r.AbsentDays,
		LeaveDays:     r.LeaveDays,
		HolidayDays:   r.HolidayDays,
		TotalDays:     r.TotalDays,
		OvertimeHours: r.OvertimeHours,
		BaseSalary:    r.BaseSalary.Round(MoneyPlaces),
		OvertimePay:   r.OvertimePay.Round(MoneyPlaces),
		GrossSalary:   r.GrossSalary.Round(MoneyPlaces),
		AdvanceTotal:  r.AdvanceTotal.Round(MoneyPlaces),
		NetSalary:     r.NetSalary.Round(MoneyPlaces),
	}
}

type RosterSummaryResponse struct {
	PeriodStart            string                  `json:"period_start"`
	PeriodEnd              string                  `json:"period_end"`
	TotalWorkers           int                     `json:"total_workers"`
	TotalPresentDays       int                     `json:"total_present_days"`
	TotalOvertimeHours     decimal.Decimal         `json:"total_overtime_hours"`
	TotalBaseSalary        decimal.Decimal         `json:"total_base_salary"`
	TotalOvertimePay       decimal.Decimal         `json:"total_overtime_pay"`
	TotalGrossSalary       decimal.Decimal         `json:"total_gross_salary"`
	TotalAdvances          decimal.Decimal         `json:"total_advances"`
	TotalNetSalary         decimal.Decimal         `json:"total_net_salary"`
	AverageDailyAttendance float64                 `json:"average_daily_attendance"`
	AverageDailyWage       decimal.Decimal         `json:"average_daily_wage"`
	Workers                []PayrollResultResponse `json:"workers"`
}

func (s RosterSummary) ToResponse() RosterSummaryResponse {
	workers := make([]PayrollResultResponse, 0, len(s.Workers))
	for _, w := range s.Workers {
		workers = append(workers, w.ToResponse())
	}
	resp := RosterSummaryResponse{
		TotalWorkers:           s.TotalWorkers,
		TotalPresentDays:       s.TotalPresentDays,
		TotalOvertimeHours:     s.TotalOvertimeHours,
		TotalBaseSalary:        s.TotalBaseSalary.Round(MoneyPlaces),
		TotalOvertimePay:       s.TotalOvertimePay.Round(MoneyPlaces),
		TotalGrossSalary:       s.TotalGrossSalary.Round(MoneyPlaces),
		TotalAdvances:          s.TotalAdvances.Round(MoneyPlaces),
		TotalNetSalary:         s.TotalNetSalary.Round(MoneyPlaces),
		AverageDailyAttendance: s.AverageDailyAttendance,
		AverageDailyWage:       s.AverageDailyWage.Round(MoneyPlaces),
		Workers:                workers,
	}
	if !s.Period.IsZero() {
		resp.PeriodStart = calendar.FormatDate(s.Period.Start)
		resp.PeriodEnd = calendar.FormatDate(s.Period.LastDay())
	}
	return resp
}

type WorkerStatsResponse struct {
	WorkerID             string          `json:"worker_id"`
	Present              int             `json:"present"`
	Absent               int             `json:"absent"`
	Leave                int             `json:"leave"`
	Holiday              int             `json:"holiday"`
	TotalDays            int             `json:"total_days"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	AttendancePercentage float64         `json:"attendance_percentage"`
}

func (s WorkerStats) ToResponse() WorkerStatsResponse {
	return WorkerStatsResponse{
		WorkerID:             s.WorkerID,
		Present:              s.Present,
		Absent:               s.Absent,
		Leave:                s.Leave,
		Holiday:              s.Holiday,
		TotalDays:            s.TotalDays,
		OvertimeHours:        s.OvertimeHours,
		OvertimePay:          s.OvertimePay.Round(MoneyPlaces),
		TotalEarnings:        s.TotalEarnings.Round(MoneyPlaces),
		AttendancePercentage: s.AttendancePercentage,
	}
}

type DailyStatsResponse struct {
	Date               string          `json:"date"`
	Present            int             `json:"present"`
	Absent             int             `json:"absent"`
	Leave              int             `json:"leave"`
	Holiday            int             `json:"holiday"`
	Total              int             `json:"total"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
}

func (s DailyStats) ToResponse() DailyStatsResponse {
	return DailyStatsResponse{
		Date:               calendar.FormatDate(s.Date),
		Present:            s.Present,
		Absent:             s.Absent,
		Leave:              s.Leave,
		Holiday:            s.Holiday,
		Total:              s.Total,
		TotalOvertimeHours: s.TotalOvertimeHours,
	}
}
