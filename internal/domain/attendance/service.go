package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	Mark(ctx context.Context, tenantID string, req MarkAttendanceRequest) (AttendanceResponse, error)
	BulkMark(ctx context.Context, tenantID string, req BulkMarkAttendanceRequest) (BulkMarkAttendanceResponse, error)
	List(ctx context.Context, tenantID string, filter AttendanceFilter) ([]AttendanceResponse, error)
	ListByDate(ctx context.Context, tenantID string, date time.Time) ([]AttendanceResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}
