package advance

import (
	"context"
	"log/slog"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
	"github.com/kaamgar/kaamgar-backend-go/internal/service/payroll"
)

type AdvanceServiceImpl struct {
	advanceRepo advance.AdvanceRepository
	workerRepo  worker.WorkerRepository
}

func NewAdvanceService(advanceRepository advance.AdvanceRepository, workerRepository worker.WorkerRepository) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo: advanceRepository,
		workerRepo:  workerRepository,
	}
}

// Create implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Create(ctx context.Context, tenantID string, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, tenantID, req.WorkerID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	created, err := s.advanceRepo.Create(ctx, req.ToEntity(tenantID))
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	created.WorkerName = &w.Name

	slog.Info("advance recorded", "contractor_id", tenantID, "worker_id", w.ID, "amount", created.Amount.String())
	return created.ToResponse(), nil
}

// GetByID implements advance.AdvanceService.
func (s *AdvanceServiceImpl) GetByID(ctx context.Context, tenantID, id string) (advance.AdvanceResponse, error) {
	a, err := s.advanceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return a.ToResponse(), nil
}

// List implements advance.AdvanceService.
func (s *AdvanceServiceImpl) List(ctx context.Context, tenantID string, filter advance.AdvanceFilter) ([]advance.AdvanceResponse, error) {
	advances, err := s.advanceRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(advances), nil
}

// Update implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Update(ctx context.Context, tenantID, id string, req advance.UpdateAdvanceRequest) (advance.AdvanceResponse, error) {
	current, err := s.advanceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	merged, err := req.Apply(current)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	updated, err := s.advanceRepo.Update(ctx, merged)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Cancel implements advance.AdvanceService. Cancelled advances stay on record but are
// no longer deducted.
func (s *AdvanceServiceImpl) Cancel(ctx context.Context, tenantID, id string) (advance.AdvanceResponse, error) {
	current, err := s.advanceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	if current.Status == advance.StatusCancelled {
		return advance.AdvanceResponse{}, advance.ErrAdvanceAlreadyCancelled
	}

	current.Status = advance.StatusCancelled
	updated, err := s.advanceRepo.Update(ctx, current)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Delete implements advance.AdvanceService.
func (s *AdvanceServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	return s.advanceRepo.Delete(ctx, tenantID, id)
}

// MonthlyTotal implements advance.AdvanceService. Only advances that count toward pay
// are listed and summed.
func (s *AdvanceServiceImpl) MonthlyTotal(ctx context.Context, tenantID, workerID string, year, month int) (advance.MonthlyTotalResponse, error) {
	if month < 1 || month > 12 {
		return advance.MonthlyTotalResponse{}, validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}}
	}

	if _, err := s.workerRepo.GetByID(ctx, tenantID, workerID); err != nil {
		return advance.MonthlyTotalResponse{}, err
	}

	period := calendar.MonthPeriod(year, month)
	listed, err := s.advanceRepo.List(ctx, tenantID, advance.AdvanceFilter{WorkerID: &workerID, Period: period})
	if err != nil {
		return advance.MonthlyTotalResponse{}, err
	}

	counted := make([]advance.Advance, 0, len(listed))
	for _, a := range listed {
		if a.Counts() {
			counted = append(counted, a)
		}
	}

	return advance.MonthlyTotalResponse{
		WorkerID: workerID,
		Year:     year,
		Month:    month,
		Total:    payroll.TotalForPeriod(counted, workerID, period),
		Advances: toResponses(counted),
	}, nil
}

func toResponses(advances []advance.Advance) []advance.AdvanceResponse {
	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, a.ToResponse())
	}
	return responses
}
