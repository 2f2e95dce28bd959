package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidKey   = errors.New("invalid file key")
)

// FileStorage keeps blobs under slash-separated relative keys such as
// "workers/<contractor>/<file>.jpg".
type FileStorage interface {
	// Save writes r under key, replacing any existing blob.
	Save(ctx context.Context, key string, r io.Reader) error

	// Open returns ErrFileNotFound when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
