package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

const (
	photoMaxSide   = 800
	photoQuality   = 85
	photoMaxPixels = 50_000_000
)

// UploadPhoto implements worker.WorkerService. The photo is stored as a JPEG no larger
// than photoMaxSide on either side, and the one it replaces is deleted.
func (s *WorkerServiceImpl) UploadPhoto(ctx context.Context, tenantID, id string, req worker.UploadPhotoRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if _, err := s.WorkerRepository.GetByID(ctx, tenantID, id); err != nil {
		return worker.WorkerResponse{}, err
	}

	photo, err := normalizePhoto(req.File)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	key := path.Join("workers", tenantID, fmt.Sprintf("%s-%s.jpg", id, uuid.NewString()))
	if err := s.photos.Save(ctx, key, bytes.NewReader(photo)); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to store worker photo: %w", err)
	}

	location := req.Location()
	if location != nil && location.CapturedAt.IsZero() {
		location.CapturedAt = s.now().UTC()
	}

	updated, previous, err := s.WorkerRepository.ReplacePhoto(ctx, tenantID, id, &key, location)
	if err != nil {
		s.deletePhoto(ctx, key)
		return worker.WorkerResponse{}, err
	}
	if previous != nil && *previous != key {
		s.deletePhoto(ctx, *previous)
	}

	slog.Info("worker photo uploaded", "contractor_id", tenantID, "worker_id", id, "bytes", len(photo), "located", location != nil)
	return updated.ToResponse(), nil
}

// OpenPhoto implements worker.WorkerService.
func (s *WorkerServiceImpl) OpenPhoto(ctx context.Context, tenantID, id string) (io.ReadCloser, error) {
	current, err := s.WorkerRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if current.Photo == nil {
		return nil, worker.ErrPhotoNotFound
	}

	rc, err := s.photos.Open(ctx, *current.Photo)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			slog.Warn("worker photo missing from storage", "contractor_id", tenantID, "worker_id", id, "key", *current.Photo)
			return nil, worker.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to open worker photo: %w", err)
	}
	return rc, nil
}

// RemovePhoto implements worker.WorkerService.
func (s *WorkerServiceImpl) RemovePhoto(ctx context.Context, tenantID, id string) (worker.WorkerResponse, error) {
	current, err := s.WorkerRepository.GetByID(ctx, tenantID, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	if current.Photo == nil {
		return worker.WorkerResponse{}, worker.ErrPhotoNotFound
	}

	updated, previous, err := s.WorkerRepository.ReplacePhoto(ctx, tenantID, id, nil, nil)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	if previous != nil {
		s.deletePhoto(ctx, *previous)
	}

	slog.Info("worker photo removed", "contractor_id", tenantID, "worker_id", id)
	return updated.ToResponse(), nil
}

func (s *WorkerServiceImpl) deletePhoto(ctx context.Context, key string) {
	if err := s.photos.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete worker photo", "key", key, "error", err)
	}
}

// normalizePhoto decodes a JPEG or PNG, scales it down to fit photoMaxSide and
// re-encodes it as JPEG.
func normalizePhoto(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, worker.MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > worker.MaxPhotoBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", worker.ErrInvalidPhoto, worker.MaxPhotoBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", worker.ErrInvalidPhoto, err)
	}
	if cfg.Width*cfg.Height > photoMaxPixels {
		return nil, fmt.Errorf("%w: %dx%d is too large", worker.ErrInvalidPhoto, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", worker.ErrInvalidPhoto, err)
	}

	if w, h := fitWithin(img.Bounds().Dx(), img.Bounds().Dy(), photoMaxSide); w != img.Bounds().Dx() || h != img.Bounds().Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: photoQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin keeps the aspect ratio and never scales up.
func fitWithin(w, h, side int) (int, int) {
	if w <= side && h <= side {
		return w, h
	}
	if w >= h {
		return side, max(1, h*side/w)
	}
	return max(1, w*side/h), side
}
