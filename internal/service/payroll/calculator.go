package payroll

import (
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// StandardShiftMinutes is the configured shift length, end minus start. ok is false
// when either time is not a valid HH:MM.
func StandardShiftMinutes(w worker.Worker) (minutes int, ok bool) {
	start, err := calendar.ParseClock(w.WorkStartTime)
	if err != nil {
		return 0, false
	}
	end, err := calendar.ParseClock(w.WorkEndTime)
	if err != nil {
		return 0, false
	}
	return end - start, true
}

// HourlyRate divides the daily wage over the standard shift. A shift that is
// unparseable or not positive yields a zero rate.
func HourlyRate(w worker.Worker) decimal.Decimal {
	minutes, ok := StandardShiftMinutes(w)
	if !ok || minutes <= 0 {
		return decimal.Zero
	}
	return w.DailyWage.Mul(minutesPerHour).Div(decimal.NewFromInt(int64(minutes)))
}

// OvertimePay pays overtime at the plain hourly rate, with no premium multiplier.
func OvertimePay(w worker.Worker, overtimeHours decimal.Decimal) decimal.Decimal {
	return overtimeHours.Mul(HourlyRate(w))
}
