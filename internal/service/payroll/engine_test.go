package payroll

import (
	"testing"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2024 = calendar.MonthPeriod(2024, 3)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func newWorker(id string, wage string) worker.Worker {
	return worker.Worker{
		ID:            id,
		ContractorID:  "tenant-1",
		Name:          "Worker " + id,
		Age:           30,
		DailyWage:     dec(wage),
		WorkStartTime: "09:00",
		WorkEndTime:   "18:00",
		Status:        worker.StatusActive,
	}
}

func record(workerID string, date time.Time, status attendance.Status, overtime string) attendance.Attendance {
	return attendance.Attendance{
		ContractorID:  "tenant-1",
		WorkerID:      workerID,
		Date:          date,
		Status:        status,
		OvertimeHours: dec(overtime),
		UpdatedAt:     date,
	}
}

func adv(workerID string, date time.Time, amount string, status advance.Status) advance.Advance {
	return advance.Advance{
		ContractorID: "tenant-1",
		WorkerID:     workerID,
		Amount:       dec(amount),
		Date:         date,
		Status:       status,
	}
}

func TestComputeWorkerPayroll_ReferenceScenario(t *testing.T) {
	w := newWorker("w1", "500")

	var records []attendance.Attendance
	for d := 1; d <= 20; d++ {
		overtime := "0"
		if d <= 5 {
			overtime = "2"
		}
		records = append(records, record("w1", day(d), attendance.StatusPresent, overtime))
	}
	advances := []advance.Advance{
		adv("w1", day(10), "1000", advance.StatusPending),
		adv("w1", day(12), "500", advance.StatusCancelled),
	}

	result := ComputeWorkerPayroll(w, march2024, records, advances)

	assert.Equal(t, 20, result.PresentDays)
	assert.True(t, dec("10").Equal(result.OvertimeHours))
	assert.Equal(t, "55.56", result.HourlyRate.StringFixed(2))
	assert.Equal(t, "555.56", result.OvertimePay.StringFixed(2))
	assert.True(t, dec("10000").Equal(result.BaseSalary))
	assert.Equal(t, "10555.56", result.GrossSalary.StringFixed(2))
	assert.True(t, dec("1000").Equal(result.AdvanceTotal))
	assert.Equal(t, "9555.56", result.NetSalary.StringFixed(2))
	assert.True(t, result.GrossSalary.Sub(result.AdvanceTotal).Equal(result.NetSalary))
}

func TestComputeWorkerPayroll_NoOvertimeNoAdvances(t *testing.T) {
	for _, wage := range []string{"0", "350", "612.50", "1200"} {
		w := newWorker("w1", wage)
		records := []attendance.Attendance{
			record("w1", day(4), attendance.StatusPresent, "0"),
			record("w1", day(5), attendance.StatusPresent, "0"),
			record("w1", day(6), attendance.StatusAbsent, "0"),
			record("w1", day(7), attendance.StatusLeave, "0"),
			record("w1", day(8), attendance.StatusPresent, "0"),
		}

		result := ComputeWorkerPayroll(w, march2024, records, nil)

		assert.Equal(t, 3, result.PresentDays, wage)
		assert.True(t, dec(wage).Mul(decimal.NewFromInt(3)).Equal(result.NetSalary), wage)
	}
}

func TestComputeWorkerPayroll_EmptyPeriod(t *testing.T) {
	w := newWorker("w1", "500")
	records := []attendance.Attendance{
		record("w1", day(4), attendance.StatusPresent, "3"),
	}

	result := ComputeWorkerPayroll(w, calendar.MonthPeriod(2024, 4), records, nil)

	assert.Equal(t, 0, result.PresentDays)
	assert.True(t, result.BaseSalary.IsZero())
	assert.True(t, result.OvertimeHours.IsZero())
	assert.True(t, result.NetSalary.IsZero())
}

func TestComputeWorkerPayroll_NegativeNetIsNotClamped(t *testing.T) {
	w := newWorker("w1", "400")
	records := []attendance.Attendance{record("w1", day(2), attendance.StatusPresent, "0")}
	advances := []advance.Advance{adv("w1", day(3), "1000", advance.StatusPending)}

	result := ComputeWorkerPayroll(w, march2024, records, advances)

	assert.True(t, dec("-600").Equal(result.NetSalary))
}

func TestComputeWorkerPayroll_IgnoresOtherWorkersAndMonths(t *testing.T) {
	w := newWorker("w1", "500")
	records := []attendance.Attendance{
		record("w1", day(1), attendance.StatusPresent, "1"),
		record("w2", day(1), attendance.StatusPresent, "4"),
		record("w1", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), attendance.StatusPresent, "2"),
		record("w1", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), attendance.StatusPresent, "2"),
	}
	advances := []advance.Advance{
		adv("w2", day(5), "300", advance.StatusPending),
		adv("w1", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "700", advance.StatusPending),
		adv("w1", day(31), "200", advance.StatusDeducted),
	}

	result := ComputeWorkerPayroll(w, march2024, records, advances)

	assert.Equal(t, 1, result.PresentDays)
	assert.True(t, dec("1").Equal(result.OvertimeHours))
	assert.True(t, dec("200").Equal(result.AdvanceTotal))
}

func TestComputeWorkerPayroll_Idempotent(t *testing.T) {
	w := newWorker("w1", "777.77")
	records := []attendance.Attendance{
		record("w1", day(1), attendance.StatusPresent, "1.5"),
		record("w1", day(2), attendance.StatusPresent, "0.25"),
	}
	advances := []advance.Advance{adv("w1", day(2), "123.45", advance.StatusPending)}

	first := ComputeWorkerPayroll(w, march2024, records, advances)
	second := ComputeWorkerPayroll(w, march2024, records, advances)

	assert.Equal(t, first, second)
}

func TestComputeWorkerPayroll_UpsertedRecordCountsOnce(t *testing.T) {
	w := newWorker("w1", "500")
	first := record("w1", day(9), attendance.StatusAbsent, "0")
	latest := record("w1", day(9), attendance.StatusPresent, "1")
	latest.UpdatedAt = first.UpdatedAt.Add(time.Minute)

	result := ComputeWorkerPayroll(w, march2024, []attendance.Attendance{latest, first}, nil)

	assert.Equal(t, 1, result.PresentDays)
	assert.Equal(t, 0, result.AbsentDays)
	assert.Equal(t, 1, result.TotalDays)
	assert.True(t, dec("1").Equal(result.OvertimeHours))
}

func TestComputeWorkerPayroll_ZeroPeriodIsAllTime(t *testing.T) {
	w := newWorker("w1", "100")
	records := []attendance.Attendance{
		record("w1", time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), attendance.StatusPresent, "0"),
		record("w1", day(1), attendance.StatusPresent, "0"),
	}

	result := ComputeWorkerPayroll(w, calendar.Period{}, records, nil)

	assert.Equal(t, 2, result.PresentDays)
	assert.True(t, dec("200").Equal(result.GrossSalary))
}

func TestComputeRosterPayroll(t *testing.T) {
	active1 := newWorker("w1", "500")
	active2 := newWorker("w2", "300")
	inactive := newWorker("w3", "900")
	inactive.Status = worker.StatusInactive

	records := []attendance.Attendance{
		record("w1", day(1), attendance.StatusPresent, "0"),
		record("w1", day(2), attendance.StatusPresent, "0"),
		record("w2", day(1), attendance.StatusPresent, "0"),
		record("w2", day(2), attendance.StatusAbsent, "0"),
		record("w3", day(1), attendance.StatusPresent, "0"),
		record("orphan", day(1), attendance.StatusPresent, "0"),
	}
	advances := []advance.Advance{
		adv("w2", day(3), "100", advance.StatusPending),
		adv("w3", day(3), "999", advance.StatusPending),
	}

	summary := ComputeRosterPayroll([]worker.Worker{active1, active2, inactive}, march2024, records, advances)

	require.Len(t, summary.Workers, 2)
	assert.Equal(t, 2, summary.TotalWorkers)
	assert.Equal(t, 3, summary.TotalPresentDays)
	assert.True(t, dec("1300").Equal(summary.TotalBaseSalary))
	assert.True(t, dec("1300").Equal(summary.TotalGrossSalary))
	assert.True(t, dec("100").Equal(summary.TotalAdvances))
	assert.True(t, dec("1200").Equal(summary.TotalNetSalary))
	assert.Equal(t, 1.5, summary.AverageDailyAttendance)
	assert.True(t, dec("400").Equal(summary.AverageDailyWage))
}

func TestComputeRosterPayroll_EmptyRoster(t *testing.T) {
	inactive := newWorker("w1", "500")
	inactive.Status = worker.StatusInactive

	for _, workers := range [][]worker.Worker{nil, {inactive}} {
		summary := ComputeRosterPayroll(workers, march2024, nil, nil)

		assert.Equal(t, 0, summary.TotalWorkers)
		assert.Equal(t, float64(0), summary.AverageDailyAttendance)
		assert.True(t, summary.AverageDailyWage.IsZero())
		assert.NotNil(t, summary.Workers)
	}
}

func TestComputeWorkerStats(t *testing.T) {
	w := newWorker("w1", "450")
	records := []attendance.Attendance{
		record("w1", day(1), attendance.StatusPresent, "2"),
		record("w1", day(2), attendance.StatusPresent, "0"),
		record("w1", day(3), attendance.StatusAbsent, "0"),
		record("w1", day(4), attendance.StatusLeave, "0"),
		record("w1", day(5), attendance.StatusHoliday, "0"),
		record("w1", day(6), attendance.StatusPresent, "1"),
	}

	stats := ComputeWorkerStats(w, march2024, records)

	assert.Equal(t, 3, stats.Present)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 1, stats.Leave)
	assert.Equal(t, 1, stats.Holiday)
	assert.Equal(t, 6, stats.TotalDays)
	assert.True(t, dec("3").Equal(stats.OvertimeHours))
	// 450 / 9h = 50 an hour
	assert.True(t, dec("150").Equal(stats.OvertimePay))
	assert.True(t, dec("1500").Equal(stats.TotalEarnings))
	assert.Equal(t, 50.0, stats.AttendancePercentage)
}

func TestComputeDailyStats(t *testing.T) {
	records := []attendance.Attendance{
		record("w1", day(7), attendance.StatusPresent, "1.5"),
		record("w2", day(7), attendance.StatusAbsent, "0"),
		record("w3", day(7), attendance.StatusLeave, "0"),
		record("w4", day(7), attendance.StatusPresent, "0.5"),
		record("w1", day(8), attendance.StatusPresent, "4"),
	}

	stats := ComputeDailyStats(records, time.Date(2024, time.March, 7, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, day(7), stats.Date)
	assert.Equal(t, 2, stats.Present)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 1, stats.Leave)
	assert.Equal(t, 4, stats.Total)
	assert.True(t, dec("2").Equal(stats.TotalOvertimeHours))
}
