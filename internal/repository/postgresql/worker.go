package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `
	id, contractor_id, name, age, phone, daily_wage, work_start_time, work_end_time,
	status, joining_date, photo_path, photo_latitude, photo_longitude, photo_accuracy,
	photo_taken_at, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var (
		w        worker.Worker
		lat, lng *float64
		accuracy *float64
		takenAt  *time.Time
	)
	err := row.Scan(
		&w.ID, &w.ContractorID, &w.Name, &w.Age, &w.Phone, &w.DailyWage, &w.WorkStartTime, &w.WorkEndTime,
		&w.Status, &w.JoiningDate, &w.Photo, &lat, &lng, &accuracy,
		&takenAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return w, err
	}
	if lat != nil && lng != nil {
		w.PhotoLocation = &worker.PhotoLocation{Latitude: *lat, Longitude: *lng, Accuracy: accuracy}
		if takenAt != nil {
			w.PhotoLocation.CapturedAt = *takenAt
		}
	}
	return w, nil
}

func collectWorkers(rows pgx.Rows) ([]worker.Worker, error) {
	defer rows.Close()

	workers := []worker.Worker{}
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}
	return workers, nil
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, newWorker worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to generate worker id: %w", err)
	}

	query := `
		INSERT INTO workers (
			id, contractor_id, name, age, phone, daily_wage,
			work_start_time, work_end_time, status, joining_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + workerColumns

	created, err := scanWorker(q.QueryRow(ctx, query,
		id.String(),
		newWorker.ContractorID,
		newWorker.Name,
		newWorker.Age,
		newWorker.Phone,
		newWorker.DailyWage,
		newWorker.WorkStartTime,
		newWorker.WorkEndTime,
		newWorker.Status,
		newWorker.JoiningDate,
	))
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, tenantID, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1 AND contractor_id = $2`

	w, err := scanWorker(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNotFound(err) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by id: %w", err)
	}
	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, tenantID string, filter worker.WorkerFilter) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	where := "contractor_id = $1"
	args := []any{tenantID}
	argIdx := 2

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
	}

	query := `SELECT ` + workerColumns + ` FROM workers WHERE ` + where + ` ORDER BY name ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return collectWorkers(rows)
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context, tenantID string) ([]worker.Worker, error) {
	status := worker.StatusActive
	return r.List(ctx, tenantID, worker.WorkerFilter{Status: &status})
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers SET
			name = $3, age = $4, phone = $5, daily_wage = $6,
			work_start_time = $7, work_end_time = $8, status = $9, joining_date = $10,
			updated_at = NOW()
		WHERE id = $1 AND contractor_id = $2
		RETURNING ` + workerColumns

	updated, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.ContractorID,
		w.Name, w.Age, w.Phone, w.DailyWage,
		w.WorkStartTime, w.WorkEndTime, w.Status, w.JoiningDate,
	))
	if err != nil {
		if isNotFound(err) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return updated, nil
}

// ReplacePhoto implements worker.WorkerRepository. The old key is read under a row
// lock so concurrent uploads each get back the photo they displaced.
func (r *workerRepository) ReplacePhoto(ctx context.Context, tenantID, id string, photo *string, location *worker.PhotoLocation) (worker.Worker, *string, error) {
	var (
		updated  worker.Worker
		previous *string
	)

	var lat, lng, accuracy *float64
	var takenAt *time.Time
	if location != nil {
		lat, lng, accuracy = &location.Latitude, &location.Longitude, location.Accuracy
		takenAt = &location.CapturedAt
	}

	err := NewTransactor(r.db).WithinTx(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		err := q.QueryRow(ctx,
			`SELECT photo_path FROM workers WHERE id = $1 AND contractor_id = $2 FOR UPDATE`,
			id, tenantID,
		).Scan(&previous)
		if err != nil {
			if isNotFound(err) {
				return worker.ErrWorkerNotFound
			}
			return fmt.Errorf("failed to lock worker: %w", err)
		}

		query := `
			UPDATE workers SET
				photo_path = $3, photo_latitude = $4, photo_longitude = $5,
				photo_accuracy = $6, photo_taken_at = $7, updated_at = NOW()
			WHERE id = $1 AND contractor_id = $2
			RETURNING ` + workerColumns

		updated, err = scanWorker(q.QueryRow(ctx, query, id, tenantID, photo, lat, lng, accuracy, takenAt))
		if err != nil {
			return fmt.Errorf("failed to update worker photo: %w", err)
		}
		return nil
	})
	if err != nil {
		return worker.Worker{}, nil, err
	}
	return updated, previous, nil
}

// Delete implements worker.WorkerRepository. Attendance and advances are kept.
func (r *workerRepository) Delete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1 AND contractor_id = $2`, id, tenantID)
	if err != nil {
		if isNotFound(err) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// CountByStatus implements worker.WorkerRepository.
func (r *workerRepository) CountByStatus(ctx context.Context, tenantID string) (map[worker.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM workers WHERE contractor_id = $1 GROUP BY status`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}
	defer rows.Close()

	counts := map[worker.Status]int{worker.StatusActive: 0, worker.StatusInactive: 0}
	for rows.Next() {
		var status worker.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan worker count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
