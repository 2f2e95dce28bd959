package advance

import "context"

type AdvanceRepository interface {
	Create(ctx context.Context, advance Advance) (Advance, error)
	GetByID(ctx context.Context, tenantID, id string) (Advance, error)
	List(ctx context.Context, tenantID string, filter AdvanceFilter) ([]Advance, error)
	Update(ctx context.Context, advance Advance) (Advance, error)
	Delete(ctx context.Context, tenantID, id string) error
}
