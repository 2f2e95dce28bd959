package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

const (
	DefaultWorkStartTime = "09:00"
	DefaultWorkEndTime   = "18:00"
	MinAge               = 18
	MaxAge               = 70
)

type Worker struct {
	ID            string
	ContractorID  string
	Name          string
	Age           int
	Phone         *string
	DailyWage     decimal.Decimal
	WorkStartTime string
	WorkEndTime   string
	Status        Status
	JoiningDate   time.Time
	// Photo is the storage key of the worker's photo, nil when none was uploaded.
	Photo         *string
	PhotoLocation *PhotoLocation
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PhotoLocation is where and when the worker photo was taken.
type PhotoLocation struct {
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	CapturedAt time.Time
}

func (w Worker) IsActive() bool {
	return w.Status == StatusActive
}

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
