package worker

import "context"

// WorkerRepository is always scoped by the owning contractor.
type WorkerRepository interface {
	Create(ctx context.Context, worker Worker) (Worker, error)
	GetByID(ctx context.Context, tenantID, id string) (Worker, error)
	List(ctx context.Context, tenantID string, filter WorkerFilter) ([]Worker, error)
	ListActive(ctx context.Context, tenantID string) ([]Worker, error)
	// Update writes the profile fields. The photo is only changed through ReplacePhoto.
	Update(ctx context.Context, worker Worker) (Worker, error)
	// ReplacePhoto sets or clears the photo and returns the key it replaced.
	ReplacePhoto(ctx context.Context, tenantID, id string, photo *string, location *PhotoLocation) (Worker, *string, error)
	Delete(ctx context.Context, tenantID, id string) error
	CountByStatus(ctx context.Context, tenantID string) (map[Status]int, error)
}
