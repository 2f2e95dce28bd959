package attendance

import "context"

type AttendanceRepository interface {
	// Upsert inserts or replaces the record keyed by (tenant, worker, date).
	Upsert(ctx context.Context, record Attendance) (Attendance, error)
	GetByID(ctx context.Context, tenantID, id string) (Attendance, error)
	List(ctx context.Context, tenantID string, filter AttendanceFilter) ([]Attendance, error)
	Delete(ctx context.Context, tenantID, id string) error
}
