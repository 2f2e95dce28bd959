package holiday

import (
	"context"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
)

type HolidayService interface {
	Create(ctx context.Context, tenantID string, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, tenantID string, period calendar.Period) ([]HolidayResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}
