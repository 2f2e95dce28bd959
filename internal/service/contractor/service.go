package contractor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
)

type ContractorServiceImpl struct {
	contractor.ContractorRepository
	now func() time.Time
}

func NewContractorService(contractorRepository contractor.ContractorRepository) contractor.ContractorService {
	return &ContractorServiceImpl{
		ContractorRepository: contractorRepository,
		now:                  time.Now,
	}
}

// GetProfile implements contractor.ContractorService.
func (s *ContractorServiceImpl) GetProfile(ctx context.Context, tenantID string) (contractor.ContractorResponse, error) {
	c, err := s.ContractorRepository.GetByID(ctx, tenantID)
	if err != nil {
		return contractor.ContractorResponse{}, err
	}
	return c.ToResponse(), nil
}

// UpdateProfile implements contractor.ContractorService.
func (s *ContractorServiceImpl) UpdateProfile(ctx context.Context, tenantID string, req contractor.UpdateProfileRequest) (contractor.ContractorResponse, error) {
	if err := req.Validate(); err != nil {
		return contractor.ContractorResponse{}, err
	}

	updated, err := s.ContractorRepository.UpdateProfile(ctx, tenantID, req)
	if err != nil {
		return contractor.ContractorResponse{}, err
	}
	return updated.ToResponse(), nil
}

// ExpireTrials implements contractor.ContractorService.
func (s *ContractorServiceImpl) ExpireTrials(ctx context.Context) (int64, error) {
	expired, err := s.ContractorRepository.ExpireTrials(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire trials: %w", err)
	}
	if expired > 0 {
		slog.Info("trial subscriptions expired", "count", expired)
	}
	return expired, nil
}
