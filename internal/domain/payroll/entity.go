package payroll

import (
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// PayrollResult is the pay of one worker for one period. NetSalary may be negative
// when advances exceed earnings.
type PayrollResult struct {
	WorkerID      string
	WorkerName    string
	Active        bool
	Period        calendar.Period
	DailyWage     decimal.Decimal
	HourlyRate    decimal.Decimal
	PresentDays   int
	AbsentDays    int
	LeaveDays     int
	HolidayDays   int
	TotalDays     int
	OvertimeHours decimal.Decimal
	BaseSalary    decimal.Decimal
	OvertimePay   decimal.Decimal
	GrossSalary   decimal.Decimal
	AdvanceTotal  decimal.Decimal
	NetSalary     decimal.Decimal
}

// RosterSummary aggregates PayrollResult over the active workers of a tenant.
type RosterSummary struct {
	Period                 calendar.Period
	Workers                []PayrollResult
	TotalWorkers           int
	TotalPresentDays       int
	TotalOvertimeHours     decimal.Decimal
	TotalBaseSalary        decimal.Decimal
	TotalOvertimePay       decimal.Decimal
	TotalGrossSalary       decimal.Decimal
	TotalAdvances          decimal.Decimal
	TotalNetSalary         decimal.Decimal
	AverageDailyAttendance float64
	AverageDailyWage       decimal.Decimal
}

type WorkerStats struct {
	WorkerID             string
	Period               calendar.Period
	Present              int
	Absent               int
	Leave                int
	Holiday              int
	TotalDays            int
	OvertimeHours        decimal.Decimal
	OvertimePay          decimal.Decimal
	TotalEarnings        decimal.Decimal
	AttendancePercentage float64
}

type DailyStats struct {
	Date               time.Time
	Present            int
	Absent             int
	Leave              int
	Holiday            int
	Total              int
	TotalOvertimeHours decimal.Decimal
}
