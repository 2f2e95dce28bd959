package auth

import (
	"strings"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)

	// Company
	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	} else if len(r.CompanyName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword(r.Password)...)

	// Phone
	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid mobile number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	errs = append(errs, validateEmail(r.Email)...)
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEmail(email string) validator.ValidationErrors {
	switch {
	case validator.IsEmpty(email):
		return validator.ValidationErrors{{Field: "email", Message: "email is required"}}
	case len(email) > 254:
		return validator.ValidationErrors{{Field: "email", Message: "email must not exceed 254 characters"}}
	case !validator.IsValidEmail(email):
		return validator.ValidationErrors{{Field: "email", Message: "email must be a valid email address"}}
	}
	return nil
}

func validatePassword(password string) validator.ValidationErrors {
	switch {
	case validator.IsEmpty(password):
		return validator.ValidationErrors{{Field: "password", Message: "password is required"}}
	case len(password) < 6:
		return validator.ValidationErrors{{Field: "password", Message: "password must be at least 6 characters long"}}
	case len(password) > 72:
		return validator.ValidationErrors{{Field: "password", Message: "password must not exceed 72 characters"}}
	}
	return nil
}

type TokenResponse struct {
	AccessToken string                        `json:"access_token"`
	TokenType   string                        `json:"token_type"`
	ExpiresAt   int64                         `json:"expires_at"`
	Contractor  contractor.ContractorResponse `json:"contractor"`
}
