package contractor

import "time"

type SubscriptionPlan string

const (
	PlanFree     SubscriptionPlan = "free"
	PlanBasic    SubscriptionPlan = "basic"
	PlanStandard SubscriptionPlan = "standard"
	PlanPremium  SubscriptionPlan = "premium"
)

type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// TrialPeriod is granted to every new contractor on registration.
const TrialPeriod = 60 * 24 * time.Hour

// Contractor is the tenant that owns workers and their records.
type Contractor struct {
	ID                 string
	CompanyName        string
	Email              string
	PasswordHash       string
	Phone              string
	Address            *string
	SubscriptionPlan   SubscriptionPlan
	SubscriptionStatus SubscriptionStatus
	TrialEndsAt        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TrialExpired reports whether a trial account has run past its trial window.
func (c Contractor) TrialExpired(now time.Time) bool {
	return c.SubscriptionStatus == SubscriptionTrial && !now.Before(c.TrialEndsAt)
}
