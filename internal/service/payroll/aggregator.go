package payroll

import (
	"math"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Selection picks the records an aggregate is computed over. Empty fields do not filter.
type Selection struct {
	WorkerID string
	Date     *time.Time
	Period   calendar.Period
}

func (s Selection) matches(r attendance.Attendance) bool {
	if s.WorkerID != "" && r.WorkerID != s.WorkerID {
		return false
	}
	if s.Date != nil && !calendar.Day(r.Date).Equal(calendar.Day(*s.Date)) {
		return false
	}
	return s.Period.Contains(r.Date)
}

type AttendanceSummary struct {
	Present       int
	Absent        int
	Leave         int
	Holiday       int
	Total         int
	OvertimeHours decimal.Decimal
}

type recordKey struct {
	workerID string
	day      time.Time
}

// Summarize counts the selected records by status and sums their overtime. Records
// sharing a (worker, date) key are counted once, keeping the most recently updated.
// Overtime is summed whatever the status, so hours entered on an absent or leave day are paid.
func Summarize(records []attendance.Attendance, sel Selection) AttendanceSummary {
	latest := make(map[recordKey]attendance.Attendance)
	var order []recordKey

	for _, r := range records {
		if !sel.matches(r) {
			continue
		}
		key := recordKey{workerID: r.WorkerID, day: calendar.Day(r.Date)}
		prev, seen := latest[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || !r.UpdatedAt.Before(prev.UpdatedAt) {
			latest[key] = r
		}
	}

	summary := AttendanceSummary{OvertimeHours: decimal.Zero}
	for _, key := range order {
		r := latest[key]
		switch r.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLeave:
			summary.Leave++
		case attendance.StatusHoliday:
			summary.Holiday++
		}
		summary.Total++
		summary.OvertimeHours = summary.OvertimeHours.Add(r.OvertimeHours)
	}
	return summary
}

// AttendancePercentage is present over every selected record, rounded to one decimal.
func AttendancePercentage(s AttendanceSummary) float64 {
	if s.Total == 0 {
		return 0
	}
	return roundTenth(float64(s.Present) / float64(s.Total) * 100)
}

func roundTenth(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}
