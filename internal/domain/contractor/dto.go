package contractor

import (
	"strings"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
)

type UpdateProfileRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CompanyName != nil {
		name := strings.TrimSpace(*r.CompanyName)
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "company_name", Message: "company_name must not be empty"})
		} else if len(name) > 255 {
			errs = append(errs, validator.ValidationError{Field: "company_name", Message: "company_name must not exceed 255 characters"})
		}
		r.CompanyName = &name
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid mobile number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ContractorResponse struct {
	ID                 string    `json:"id"`
	CompanyName        string    `json:"company_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            *string   `json:"address,omitempty"`
	SubscriptionPlan   string    `json:"subscription_plan"`
	SubscriptionStatus string    `json:"subscription_status"`
	TrialEndsAt        time.Time `json:"trial_ends_at"`
	CreatedAt          time.Time `json:"created_at"`
}

func (c Contractor) ToResponse() ContractorResponse {
	return ContractorResponse{
		ID:                 c.ID,
		CompanyName:        c.CompanyName,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		SubscriptionPlan:   string(c.SubscriptionPlan),
		SubscriptionStatus: string(c.SubscriptionStatus),
		TrialEndsAt:        c.TrialEndsAt,
		CreatedAt:          c.CreatedAt,
	}
}
