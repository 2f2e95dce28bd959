package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDeducted  Status = "deducted"
	StatusCancelled Status = "cancelled"
)

var Statuses = []string{string(StatusPending), string(StatusDeducted), string(StatusCancelled)}

// Advance is a cash payment to a worker recovered from a later payroll.
type Advance struct {
	ID           string
	ContractorID string
	WorkerID     string
	Amount       decimal.Decimal
	Date         time.Time
	Reason       string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	WorkerName *string
}

// Counts reports whether the advance is deducted from pay.
func (a Advance) Counts() bool {
	return a.Status != StatusCancelled
}
