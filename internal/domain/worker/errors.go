package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrInvalidStatus  = errors.New("invalid worker status")
	ErrPhotoNotFound  = errors.New("worker has no photo")
	ErrInvalidPhoto   = errors.New("photo must be a JPEG or PNG image")
)
