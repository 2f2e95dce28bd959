package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/storage"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
	photos storage.FileStorage
	now    func() time.Time
}

func NewWorkerService(workerRepository worker.WorkerRepository, photos storage.FileStorage) worker.WorkerService {
	return &WorkerServiceImpl{
		WorkerRepository: workerRepository,
		photos:           photos,
		now:              time.Now,
	}
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, tenantID string, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	created, err := s.WorkerRepository.Create(ctx, worker.Worker{
		ContractorID:  tenantID,
		Name:          req.Name,
		Age:           req.Age,
		Phone:         req.Phone,
		DailyWage:     req.DailyWage,
		WorkStartTime: req.WorkStartTime,
		WorkEndTime:   req.WorkEndTime,
		Status:        worker.Status(req.Status),
		JoiningDate:   req.ParsedJoiningDate(),
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	slog.Info("worker created", "contractor_id", tenantID, "worker_id", created.ID)
	return created.ToResponse(), nil
}

// GetByID implements worker.WorkerService.
func (s *WorkerServiceImpl) GetByID(ctx context.Context, tenantID, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return w.ToResponse(), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, tenantID string, filter worker.WorkerFilter) ([]worker.WorkerResponse, error) {
	if filter.Status != nil && *filter.Status != worker.StatusActive && *filter.Status != worker.StatusInactive {
		return nil, worker.ErrInvalidStatus
	}

	workers, err := s.WorkerRepository.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, w.ToResponse())
	}
	return responses, nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, tenantID, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	current, err := s.WorkerRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	merged, err := req.Apply(current)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	updated, err := s.WorkerRepository.Update(ctx, merged)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return updated.ToResponse(), nil
}

// ToggleStatus implements worker.WorkerService.
func (s *WorkerServiceImpl) ToggleStatus(ctx context.Context, tenantID, id string) (worker.WorkerResponse, error) {
	current, err := s.WorkerRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	current.Status = current.Status.Toggled()
	updated, err := s.WorkerRepository.Update(ctx, current)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	slog.Info("worker status toggled", "contractor_id", tenantID, "worker_id", id, "status", updated.Status)
	return updated.ToResponse(), nil
}

// Delete implements worker.WorkerService. Attendance and advances of the worker are kept,
// the photo file is removed.
func (s *WorkerServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	current, err := s.WorkerRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.WorkerRepository.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	if current.Photo != nil {
		s.deletePhoto(ctx, *current.Photo)
	}
	return nil
}
