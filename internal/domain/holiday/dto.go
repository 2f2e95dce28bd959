package holiday

import (
	"strings"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateHolidayRequest) ToEntity(tenantID string) Holiday {
	date, _ := calendar.ParseDate(r.Date)
	return Holiday{
		ContractorID: tenantID,
		Date:         date,
		Name:         r.Name,
		Description:  r.Description,
	}
}

type UpdateHolidayRequest struct {
	Date        *string `json:"date,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Apply(current Holiday) (Holiday, error) {
	var errs validator.ValidationErrors
	updated := current

	if r.Date != nil {
		d, err := calendar.ParseDate(*r.Date)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
		updated.Date = d
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
		}
		updated.Name = name
	}
	if r.Description != nil {
		updated.Description = r.Description
	}

	if len(errs) > 0 {
		return current, errs
	}
	return updated, nil
}

type HolidayResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h Holiday) ToResponse() HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        calendar.FormatDate(h.Date),
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
}
