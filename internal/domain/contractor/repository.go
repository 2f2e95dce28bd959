package contractor

import (
	"context"
	"time"
)

type ContractorRepository interface {
	Create(ctx context.Context, contractor Contractor) (Contractor, error)
	GetByID(ctx context.Context, id string) (Contractor, error)
	GetByEmail(ctx context.Context, email string) (Contractor, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (Contractor, error)
	// ExpireTrials flips every trial whose trial_ends_at is at or before now to expired.
	ExpireTrials(ctx context.Context, now time.Time) (int64, error)
}
