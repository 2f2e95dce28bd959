package payroll

import (
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// TotalForPeriod sums the non-cancelled advances of workerID dated inside period.
// An empty workerID sums across workers; a zero period applies no date filter.
func TotalForPeriod(advances []advance.Advance, workerID string, period calendar.Period) decimal.Decimal {
	total := decimal.Zero
	for _, a := range advances {
		if workerID != "" && a.WorkerID != workerID {
			continue
		}
		if !a.Counts() || !period.Contains(a.Date) {
			continue
		}
		total = total.Add(a.Amount)
	}
	return total
}

func TotalAllTime(advances []advance.Advance, workerID string) decimal.Decimal {
	return TotalForPeriod(advances, workerID, calendar.Period{})
}
