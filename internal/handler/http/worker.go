package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/middleware"
	"github.com/kaamgar/kaamgar-backend-go/internal/handler/http/response"
)

type WorkerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ToggleStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UploadPhoto(w http.ResponseWriter, r *http.Request)
	Photo(w http.ResponseWriter, r *http.Request)
	RemovePhoto(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &workerHandlerImpl{
		workerService: workerService,
	}
}

// List implements WorkerHandler
func (h *workerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := newQueryParams(r)

	var filter worker.WorkerFilter
	if status := query.str("status"); status != nil {
		s := worker.Status(*status)
		filter.Status = &s
	}
	filter.Search = query.str("search")

	workers, err := h.workerService.List(r.Context(), middleware.TenantID(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, workers)
}

// Get implements WorkerHandler
func (h *workerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workerService.GetByID(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements WorkerHandler
func (h *workerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req worker.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode worker request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workerService.Create(r.Context(), middleware.TenantID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", result)
}

// Update implements WorkerHandler
func (h *workerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req worker.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode worker request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workerService.Update(r.Context(), middleware.TenantID(r.Context()), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", result)
}

// ToggleStatus implements WorkerHandler
func (h *workerHandlerImpl) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workerService.ToggleStatus(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker status updated", result)
}

// Delete implements WorkerHandler
func (h *workerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workerService.Delete(r.Context(), middleware.TenantID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted successfully", nil)
}

// UploadPhoto implements WorkerHandler. Expects multipart/form-data with a "photo"
// file and optional latitude, longitude, accuracy and timestamp fields.
func (h *workerHandlerImpl) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Form overhead on top of the photo itself
	r.Body = http.MaxBytesReader(w, r.Body, worker.MaxPhotoBytes+1<<20)
	if err := r.ParseMultipartForm(worker.MaxPhotoBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RequestTooLarge(w, "Photo must not exceed 10MB")
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := worker.UploadPhotoRequest{
		Latitude:  r.FormValue("latitude"),
		Longitude: r.FormValue("longitude"),
		Accuracy:  r.FormValue("accuracy"),
		Timestamp: r.FormValue("timestamp"),
	}

	file, fileHeader, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		req.File = file
		req.Filename = fileHeader.Filename
	case !errors.Is(err, http.ErrMissingFile):
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.workerService.UploadPhoto(r.Context(), middleware.TenantID(r.Context()), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker photo uploaded", result)
}

// Photo implements WorkerHandler. Stored photos are always JPEG.
func (h *workerHandlerImpl) Photo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	photo, err := h.workerService.OpenPhoto(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer photo.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, photo); err != nil {
		slog.Error("Failed to write worker photo", "error", err)
	}
}

// RemovePhoto implements WorkerHandler.
func (h *workerHandlerImpl) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.workerService.RemovePhoto(r.Context(), middleware.TenantID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker photo removed", result)
}
