package holiday

import (
	"context"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: holidayRepository}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, tenantID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	created, err := s.HolidayRepository.Create(ctx, req.ToEntity(tenantID))
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return created.ToResponse(), nil
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, tenantID string, period calendar.Period) ([]holiday.HolidayResponse, error) {
	holidays, err := s.HolidayRepository.List(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, h.ToResponse())
	}
	return responses, nil
}

// Update implements holiday.HolidayService.
func (s *HolidayServiceImpl) Update(ctx context.Context, tenantID, id string, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	current, err := s.HolidayRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	merged, err := req.Apply(current)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	updated, err := s.HolidayRepository.Update(ctx, merged)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	return s.HolidayRepository.Delete(ctx, tenantID, id)
}
