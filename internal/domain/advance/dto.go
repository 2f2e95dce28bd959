package advance

import (
	"strings"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/payroll"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	WorkerID string          `json:"worker_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Reason   string          `json:"reason"`
	Status   string          `json:"status"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Reason = strings.TrimSpace(r.Reason)
	if r.Status == "" {
		r.Status = string(StatusPending)
	}

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id is required"})
	} else if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "worker_id must be a valid UUID"})
	}
	errs = append(errs, validateAmount(r.Amount)...)
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of pending, deducted, cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity must only be called after a successful Validate.
func (r *CreateAdvanceRequest) ToEntity(tenantID string) Advance {
	date, _ := calendar.ParseDate(r.Date)
	return Advance{
		ContractorID: tenantID,
		WorkerID:     r.WorkerID,
		Amount:       r.Amount,
		Date:         date,
		Reason:       r.Reason,
		Status:       Status(r.Status),
	}
}

type UpdateAdvanceRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Date   *string          `json:"date,omitempty"`
	Reason *string          `json:"reason,omitempty"`
	Status *string          `json:"status,omitempty"`
}

// Apply validates the patch against the current advance and returns the merged result.
func (r *UpdateAdvanceRequest) Apply(current Advance) (Advance, error) {
	var errs validator.ValidationErrors
	updated := current

	if r.Amount != nil {
		errs = append(errs, validateAmount(*r.Amount)...)
		updated.Amount = *r.Amount
	}
	if r.Date != nil {
		d, err := calendar.ParseDate(*r.Date)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
		updated.Date = d
	}
	if r.Reason != nil {
		updated.Reason = strings.TrimSpace(*r.Reason)
	}
	if r.Status != nil {
		if !validator.IsInSlice(*r.Status, Statuses) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of pending, deducted, cancelled"})
		}
		updated.Status = Status(*r.Status)
	}

	if len(errs) > 0 {
		return current, errs
	}
	return updated, nil
}

func validateAmount(amount decimal.Decimal) validator.ValidationErrors {
	if !amount.IsPositive() {
		return validator.ValidationErrors{{Field: "amount", Message: "amount must be greater than 0"}}
	}
	if !validator.HasMaxDecimalPlaces(amount, payroll.MoneyPlaces) {
		return validator.ValidationErrors{{Field: "amount", Message: "amount must have at most 2 decimal places"}}
	}
	return nil
}

// AdvanceFilter narrows a tenant's advances. A zero Period applies no date range.
type AdvanceFilter struct {
	WorkerID *string
	Period   calendar.Period
	Status   *Status
}

type AdvanceResponse struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"worker_id"`
	WorkerName *string         `json:"worker_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Reason     string          `json:"reason"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (a Advance) ToResponse() AdvanceResponse {
	return AdvanceResponse{
		ID:         a.ID,
		WorkerID:   a.WorkerID,
		WorkerName: a.WorkerName,
		Amount:     a.Amount,
		Date:       calendar.FormatDate(a.Date),
		Reason:     a.Reason,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type MonthlyTotalResponse struct {
	WorkerID string            `json:"worker_id"`
	Year     int               `json:"year"`
	Month    int               `json:"month"`
	Total    decimal.Decimal   `json:"total"`
	Advances []AdvanceResponse `json:"advances"`
}
