package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
)

var Statuses = []string{string(StatusPresent), string(StatusAbsent), string(StatusLeave), string(StatusHoliday)}

// Attendance is unique per (ContractorID, WorkerID, Date).
type Attendance struct {
	ID            string
	ContractorID  string
	WorkerID      string
	Date          time.Time
	Status        Status
	OvertimeHours decimal.Decimal
	CheckInTime   *string
	CheckOutTime  *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	WorkerName *string
}
