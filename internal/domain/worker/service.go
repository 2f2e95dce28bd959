package worker

import (
	"context"
	"io"
)

type WorkerService interface {
	Create(ctx context.Context, tenantID string, req CreateWorkerRequest) (WorkerResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (WorkerResponse, error)
	List(ctx context.Context, tenantID string, filter WorkerFilter) ([]WorkerResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	ToggleStatus(ctx context.Context, tenantID, id string) (WorkerResponse, error)
	Delete(ctx context.Context, tenantID, id string) error

	UploadPhoto(ctx context.Context, tenantID, id string, req UploadPhotoRequest) (WorkerResponse, error)
	// OpenPhoto streams the stored JPEG. The caller closes it.
	OpenPhoto(ctx context.Context, tenantID, id string) (io.ReadCloser, error)
	RemovePhoto(ctx context.Context, tenantID, id string) (WorkerResponse, error)
}
