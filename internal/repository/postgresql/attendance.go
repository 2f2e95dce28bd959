package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.contractor_id, a.worker_id, a.date, a.status, a.overtime_hours,
	a.check_in_time, a.check_out_time, a.notes, a.created_at, a.updated_at`

// Upsert implements attendance.AttendanceRepository. Concurrent writers for the same
// (contractor, worker, date) resolve to one row holding the last write.
func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances AS a (
			id, contractor_id, worker_id, date, status, overtime_hours,
			check_in_time, check_out_time, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT attendances_contractor_worker_date_key DO UPDATE SET
			status         = EXCLUDED.status,
			overtime_hours = EXCLUDED.overtime_hours,
			check_in_time  = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			notes          = EXCLUDED.notes,
			updated_at     = NOW()
		RETURNING ` + attendanceColumns

	var saved attendance.Attendance
	err = q.QueryRow(ctx, query,
		id.String(),
		record.ContractorID,
		record.WorkerID,
		record.Date,
		record.Status,
		record.OvertimeHours,
		record.CheckInTime,
		record.CheckOutTime,
		record.Notes,
	).Scan(
		&saved.ID, &saved.ContractorID, &saved.WorkerID, &saved.Date, &saved.Status, &saved.OvertimeHours,
		&saved.CheckInTime, &saved.CheckOutTime, &saved.Notes, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return saved, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, tenantID, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, w.name
		FROM attendances a
		LEFT JOIN workers w ON w.id = a.worker_id
		WHERE a.id = $1 AND a.contractor_id = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, tenantID).Scan(
		&att.ID, &att.ContractorID, &att.WorkerID, &att.Date, &att.Status, &att.OvertimeHours,
		&att.CheckInTime, &att.CheckOutTime, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.WorkerName,
	)
	if err != nil {
		if isNotFound(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, tenantID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	where := "a.contractor_id = $1"
	args := []any{tenantID}
	argIdx := 2

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		where += fmt.Sprintf(" AND a.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.Date != nil {
		where += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	// Half-open month or range window
	if !filter.Period.IsZero() {
		where += fmt.Sprintf(" AND a.date >= $%d AND a.date < $%d", argIdx, argIdx+1)
		args = append(args, filter.Period.Start, filter.Period.End)
		argIdx += 2
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
	}

	query := `
		SELECT ` + attendanceColumns + `, w.name
		FROM attendances a
		LEFT JOIN workers w ON w.id = a.worker_id
		WHERE ` + where + `
		ORDER BY a.date DESC, w.name ASC NULLS LAST
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isNotFound(err) {
			return []attendance.Attendance{}, nil
		}
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.ContractorID, &att.WorkerID, &att.Date, &att.Status, &att.OvertimeHours,
			&att.CheckInTime, &att.CheckOutTime, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
			&att.WorkerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1 AND contractor_id = $2`, id, tenantID)
	if err != nil {
		if isNotFound(err) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
