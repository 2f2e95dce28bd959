package contractor

import "context"

type ContractorService interface {
	GetProfile(ctx context.Context, tenantID string) (ContractorResponse, error)
	UpdateProfile(ctx context.Context, tenantID string, req UpdateProfileRequest) (ContractorResponse, error)
	ExpireTrials(ctx context.Context) (int64, error)
}
