package contractor

import "errors"

var (
	ErrContractorNotFound  = errors.New("contractor not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrSubscriptionExpired = errors.New("subscription has expired")
)
