package payroll

import (
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/payroll"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// ComputeWorkerPayroll derives one worker's pay for period from the given snapshots.
// It never fails: a degenerate shift pays no overtime and net pay is not clamped.
func ComputeWorkerPayroll(w worker.Worker, period calendar.Period, records []attendance.Attendance, advances []advance.Advance) payroll.PayrollResult {
	summary := Summarize(records, Selection{WorkerID: w.ID, Period: period})

	base := w.DailyWage.Mul(decimal.NewFromInt(int64(summary.Present)))
	overtimePay := OvertimePay(w, summary.OvertimeHours)
	gross := base.Add(overtimePay)
	advanceTotal := TotalForPeriod(advances, w.ID, period)

	return payroll.PayrollResult{
		WorkerID:      w.ID,
		WorkerName:    w.Name,
		Active:        w.IsActive(),
		Period:        period,
		DailyWage:     w.DailyWage,
		HourlyRate:    HourlyRate(w),
		PresentDays:   summary.Present,
		AbsentDays:    summary.Absent,
		LeaveDays:     summary.Leave,
		HolidayDays:   summary.Holiday,
		TotalDays:     summary.Total,
		OvertimeHours: summary.OvertimeHours,
		BaseSalary:    base,
		OvertimePay:   overtimePay,
		GrossSalary:   gross,
		AdvanceTotal:  advanceTotal,
		NetSalary:     gross.Sub(advanceTotal),
	}
}

// ComputeRosterPayroll sums worker payroll over the active workers only. Averages
// are zero for an empty roster.
func ComputeRosterPayroll(workers []worker.Worker, period calendar.Period, records []attendance.Attendance, advances []advance.Advance) payroll.RosterSummary {
	summary := payroll.RosterSummary{
		Period:             period,
		Workers:            []payroll.PayrollResult{},
		TotalOvertimeHours: decimal.Zero,
		TotalBaseSalary:    decimal.Zero,
		TotalOvertimePay:   decimal.Zero,
		TotalGrossSalary:   decimal.Zero,
		TotalAdvances:      decimal.Zero,
		TotalNetSalary:     decimal.Zero,
		AverageDailyWage:   decimal.Zero,
	}

	totalWage := decimal.Zero
	for _, w := range workers {
		if !w.IsActive() {
			continue
		}
		result := ComputeWorkerPayroll(w, period, records, advances)

		summary.Workers = append(summary.Workers, result)
		summary.TotalWorkers++
		summary.TotalPresentDays += result.PresentDays
		summary.TotalOvertimeHours = summary.TotalOvertimeHours.Add(result.OvertimeHours)
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(result.BaseSalary)
		summary.TotalOvertimePay = summary.TotalOvertimePay.Add(result.OvertimePay)
		summary.TotalGrossSalary = summary.TotalGrossSalary.Add(result.GrossSalary)
		summary.TotalAdvances = summary.TotalAdvances.Add(result.AdvanceTotal)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(result.NetSalary)
		totalWage = totalWage.Add(w.DailyWage)
	}

	if summary.TotalWorkers > 0 {
		count := summary.TotalWorkers
		summary.AverageDailyAttendance = roundTenth(float64(summary.TotalPresentDays) / float64(count))
		summary.AverageDailyWage = totalWage.Div(decimal.NewFromInt(int64(count)))
	}
	return summary
}

// ComputeWorkerStats summarises every record of the worker inside period, whatever
// the worker's status.
func ComputeWorkerStats(w worker.Worker, period calendar.Period, records []attendance.Attendance) payroll.WorkerStats {
	summary := Summarize(records, Selection{WorkerID: w.ID, Period: period})
	overtimePay := OvertimePay(w, summary.OvertimeHours)

	return payroll.WorkerStats{
		WorkerID:             w.ID,
		Period:               period,
		Present:              summary.Present,
		Absent:               summary.Absent,
		Leave:                summary.Leave,
		Holiday:              summary.Holiday,
		TotalDays:            summary.Total,
		OvertimeHours:        summary.OvertimeHours,
		OvertimePay:          overtimePay,
		TotalEarnings:        w.DailyWage.Mul(decimal.NewFromInt(int64(summary.Present))).Add(overtimePay),
		AttendancePercentage: AttendancePercentage(summary),
	}
}

// ComputeDailyStats counts the records of every worker on date.
func ComputeDailyStats(records []attendance.Attendance, date time.Time) payroll.DailyStats {
	day := calendar.Day(date)
	summary := Summarize(records, Selection{Date: &day})

	return payroll.DailyStats{
		Date:               day,
		Present:            summary.Present,
		Absent:             summary.Absent,
		Leave:              summary.Leave,
		Holiday:            summary.Holiday,
		Total:              summary.Total,
		TotalOvertimeHours: summary.OvertimeHours,
	}
}
