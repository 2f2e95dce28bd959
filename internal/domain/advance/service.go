package advance

import "context"

type AdvanceService interface {
	Create(ctx context.Context, tenantID string, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (AdvanceResponse, error)
	List(ctx context.Context, tenantID string, filter AdvanceFilter) ([]AdvanceResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateAdvanceRequest) (AdvanceResponse, error)
	Cancel(ctx context.Context, tenantID, id string) (AdvanceResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
	MonthlyTotal(ctx context.Context, tenantID, workerID string, year, month int) (MonthlyTotalResponse, error)
}
