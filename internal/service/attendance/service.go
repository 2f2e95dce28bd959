package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	worker.WorkerRepository
}

func NewAttendanceService(tx database.Transactor, attendanceRepository attendance.AttendanceRepository, workerRepository worker.WorkerRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		WorkerRepository:     workerRepository,
	}
}

// Mark implements attendance.AttendanceService. A second mark for the same worker and
// day replaces the first.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, tenantID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, tenantID, req.WorkerID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := s.AttendanceRepository.Upsert(ctx, req.ToEntity(tenantID))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	saved.WorkerName = &w.Name

	return saved.ToResponse(), nil
}

// BulkMark implements attendance.AttendanceService. Either every record is stored or none.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, tenantID string, req attendance.BulkMarkAttendanceRequest) (attendance.BulkMarkAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkAttendanceResponse{}, err
	}

	records := make([]attendance.AttendanceResponse, 0, len(req.Records))
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		names := make(map[string]string)
		for i := range req.Records {
			item := &req.Records[i]

			name, ok := names[item.WorkerID]
			if !ok {
				w, err := s.WorkerRepository.GetByID(ctx, tenantID, item.WorkerID)
				if err != nil {
					return fmt.Errorf("records[%d]: %w", i, err)
				}
				name = w.Name
				names[item.WorkerID] = name
			}

			saved, err := s.AttendanceRepository.Upsert(ctx, item.ToEntity(tenantID))
			if err != nil {
				return fmt.Errorf("records[%d]: %w", i, err)
			}
			saved.WorkerName = &name
			records = append(records, saved.ToResponse())
		}
		return nil
	})
	if err != nil {
		return attendance.BulkMarkAttendanceResponse{}, err
	}

	slog.Info("bulk attendance marked", "contractor_id", tenantID, "count", len(records))
	return attendance.BulkMarkAttendanceResponse{Count: len(records), Records: records}, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, tenantID string, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, record.ToResponse())
	}
	return responses, nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, tenantID string, date time.Time) ([]attendance.AttendanceResponse, error) {
	day := calendar.Day(date)
	return s.List(ctx, tenantID, attendance.AttendanceFilter{Date: &day})
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	return s.AttendanceRepository.Delete(ctx, tenantID, id)
}
