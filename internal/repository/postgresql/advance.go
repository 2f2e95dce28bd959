package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `
	a.id, a.contractor_id, a.worker_id, a.amount, a.date, COALESCE(a.reason, ''), a.status,
	a.created_at, a.updated_at`

func scanAdvance(row pgx.Row, withWorker bool) (advance.Advance, error) {
	var adv advance.Advance
	dest := []any{
		&adv.ID, &adv.ContractorID, &adv.WorkerID, &adv.Amount, &adv.Date, &adv.Reason, &adv.Status,
		&adv.CreatedAt, &adv.UpdatedAt,
	}
	if withWorker {
		dest = append(dest, &adv.WorkerName)
	}
	err := row.Scan(dest...)
	return adv, err
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepository) Create(ctx context.Context, newAdvance advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to generate advance id: %w", err)
	}

	query := `
		INSERT INTO advances AS a (id, contractor_id, worker_id, amount, date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + advanceColumns

	created, err := scanAdvance(q.QueryRow(ctx, query,
		id.String(),
		newAdvance.ContractorID,
		newAdvance.WorkerID,
		newAdvance.Amount,
		newAdvance.Date,
		newAdvance.Reason,
		newAdvance.Status,
	), false)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}
	return created, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepository) GetByID(ctx context.Context, tenantID, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + advanceColumns + `, w.name
		FROM advances a
		LEFT JOIN workers w ON w.id = a.worker_id
		WHERE a.id = $1 AND a.contractor_id = $2
	`

	adv, err := scanAdvance(q.QueryRow(ctx, query, id, tenantID), true)
	if err != nil {
		if isNotFound(err) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance by id: %w", err)
	}
	return adv, nil
}

// List implements advance.AdvanceRepository.
func (r *advanceRepository) List(ctx context.Context, tenantID string, filter advance.AdvanceFilter) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	where := "a.contractor_id = $1"
	args := []any{tenantID}
	argIdx := 2

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		where += fmt.Sprintf(" AND a.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
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
		SELECT ` + advanceColumns + `, w.name
		FROM advances a
		LEFT JOIN workers w ON w.id = a.worker_id
		WHERE ` + where + `
		ORDER BY a.date DESC, a.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isNotFound(err) {
			return []advance.Advance{}, nil
		}
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	advances := []advance.Advance{}
	for rows.Next() {
		adv, err := scanAdvance(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, adv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advances: %w", err)
	}
	return advances, nil
}

// Update implements advance.AdvanceRepository.
func (r *advanceRepository) Update(ctx context.Context, adv advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances AS a SET
			amount = $3, date = $4, reason = $5, status = $6, updated_at = NOW()
		WHERE a.id = $1 AND a.contractor_id = $2
		RETURNING ` + advanceColumns

	updated, err := scanAdvance(q.QueryRow(ctx, query,
		adv.ID, adv.ContractorID, adv.Amount, adv.Date, adv.Reason, adv.Status,
	), false)
	if err != nil {
		if isNotFound(err) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to update advance: %w", err)
	}
	updated.WorkerName = adv.WorkerName
	return updated, nil
}

// Delete implements advance.AdvanceRepository.
func (r *advanceRepository) Delete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM advances WHERE id = $1 AND contractor_id = $2`, id, tenantID)
	if err != nil {
		if isNotFound(err) {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to delete advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}
	return nil
}
