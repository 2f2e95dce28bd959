package attendance

import (
	"fmt"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	MaxBulkRecords = 500
	// HoursPlaces matches the precision overtime_hours is stored with.
	HoursPlaces = 2
)

type MarkAttendanceRequest struct {
	WorkerID      string           `json:"worker_id"`
	Date          string           `json:"date"`
	Status        string           `json:"status"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	CheckInTime   *string          `json:"check_in_time,omitempty"`
	CheckOutTime  *string          `json:"check_out_time,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	errs := r.validate("")
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *MarkAttendanceRequest) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: prefix + "worker_id", Message: "worker_id is required"})
	} else if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: prefix + "worker_id", Message: "worker_id must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: prefix + "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: prefix + "status", Message: "status must be one of present, absent, leave, holiday"})
	}
	if r.OvertimeHours != nil {
		if r.OvertimeHours.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: prefix + "overtime_hours", Message: "overtime_hours must not be negative"})
		} else if r.OvertimeHours.GreaterThan(decimal.NewFromInt(24)) {
			errs = append(errs, validator.ValidationError{Field: prefix + "overtime_hours", Message: "overtime_hours must not exceed 24"})
		} else if !validator.HasMaxDecimalPlaces(*r.OvertimeHours, HoursPlaces) {
			errs = append(errs, validator.ValidationError{Field: prefix + "overtime_hours", Message: "overtime_hours must have at most 2 decimal places"})
		}
	}
	if r.CheckInTime != nil && !calendar.IsValidClock(*r.CheckInTime) {
		errs = append(errs, validator.ValidationError{Field: prefix + "check_in_time", Message: "check_in_time must be in HH:MM format"})
	}
	if r.CheckOutTime != nil && !calendar.IsValidClock(*r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{Field: prefix + "check_out_time", Message: "check_out_time must be in HH:MM format"})
	}

	return errs
}

// ToEntity must only be called after a successful Validate.
func (r *MarkAttendanceRequest) ToEntity(tenantID string) Attendance {
	date, _ := calendar.ParseDate(r.Date)
	overtime := decimal.Zero
	if r.OvertimeHours != nil {
		overtime = *r.OvertimeHours
	}
	return Attendance{
		ContractorID:  tenantID,
		WorkerID:      r.WorkerID,
		Date:          date,
		Status:        Status(r.Status),
		OvertimeHours: overtime,
		CheckInTime:   r.CheckInTime,
		CheckOutTime:  r.CheckOutTime,
		Notes:         r.Notes,
	}
}

type BulkMarkAttendanceRequest struct {
	Records []MarkAttendanceRequest `json:"records"`
}

func (r *BulkMarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Records) == 0 {
		return ErrEmptyBulkRequest
	}
	if len(r.Records) > MaxBulkRecords {
		errs = append(errs, validator.ValidationError{Field: "records", Message: fmt.Sprintf("at most %d records per request", MaxBulkRecords)})
	}
	for i := range r.Records {
		errs = append(errs, r.Records[i].validate(fmt.Sprintf("records[%d].", i))...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkMarkAttendanceResponse struct {
	Count   int                  `json:"count"`
	Records []AttendanceResponse `json:"records"`
}

// AttendanceFilter narrows a tenant's records. A zero Period applies no date range.
type AttendanceFilter struct {
	WorkerID *string
	Date     *time.Time
	Period   calendar.Period
	Status   *Status
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	WorkerID      string          `json:"worker_id"`
	WorkerName    *string         `json:"worker_name,omitempty"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	CheckInTime   *string         `json:"check_in_time,omitempty"`
	CheckOutTime  *string         `json:"check_out_time,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		WorkerID:      a.WorkerID,
		WorkerName:    a.WorkerName,
		Date:          calendar.FormatDate(a.Date),
		Status:        string(a.Status),
		OvertimeHours: a.OvertimeHours,
		CheckInTime:   a.CheckInTime,
		CheckOutTime:  a.CheckOutTime,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
