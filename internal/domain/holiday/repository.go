package holiday

import (
	"context"

	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
)

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByID(ctx context.Context, tenantID, id string) (Holiday, error)
	// List returns holidays ordered by date. A zero period returns all of them.
	List(ctx context.Context, tenantID string, period calendar.Period) ([]Holiday, error)
	Update(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, tenantID, id string) error
}
