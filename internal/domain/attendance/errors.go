package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEmptyBulkRequest   = errors.New("bulk request contains no records")
)
