package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/contractor"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/database"
)

type contractorRepository struct {
	db *database.DB
}

func NewContractorRepository(db *database.DB) contractor.ContractorRepository {
	return &contractorRepository{db: db}
}

const contractorColumns = `
	id, company_name, email, password_hash, phone, address,
	subscription_plan, subscription_status, trial_ends_at, created_at, updated_at`

func scanContractor(row pgx.Row) (contractor.Contractor, error) {
	var c contractor.Contractor
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.Email, &c.PasswordHash, &c.Phone, &c.Address,
		&c.SubscriptionPlan, &c.SubscriptionStatus, &c.TrialEndsAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements contractor.ContractorRepository.
func (r *contractorRepository) Create(ctx context.Context, newContractor contractor.Contractor) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return contractor.Contractor{}, fmt.Errorf("failed to generate contractor id: %w", err)
	}

	query := `
		INSERT INTO contractors (
			id, company_name, email, password_hash, phone, address,
			subscription_plan, subscription_status, trial_ends_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contractorColumns

	created, err := scanContractor(q.QueryRow(ctx, query,
		id.String(),
		newContractor.CompanyName,
		newContractor.Email,
		newContractor.PasswordHash,
		newContractor.Phone,
		newContractor.Address,
		newContractor.SubscriptionPlan,
		newContractor.SubscriptionStatus,
		newContractor.TrialEndsAt,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return contractor.Contractor{}, contractor.ErrEmailExists
		}
		return contractor.Contractor{}, fmt.Errorf("failed to create contractor: %w", err)
	}

	return created, nil
}

// GetByID implements contractor.ContractorRepository.
func (r *contractorRepository) GetByID(ctx context.Context, id string) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE id = $1`

	c, err := scanContractor(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return contractor.Contractor{}, contractor.ErrContractorNotFound
		}
		return contractor.Contractor{}, fmt.Errorf("failed to get contractor by id: %w", err)
	}
	return c, nil
}

// GetByEmail implements contractor.ContractorRepository.
func (r *contractorRepository) GetByEmail(ctx context.Context, email string) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE email = $1`

	c, err := scanContractor(q.QueryRow(ctx, query, email))
	if err != nil {
		if isNotFound(err) {
			return contractor.Contractor{}, contractor.ErrContractorNotFound
		}
		return contractor.Contractor{}, fmt.Errorf("failed to get contractor by email: %w", err)
	}
	return c, nil
}

// UpdateProfile implements contractor.ContractorRepository.
func (r *contractorRepository) UpdateProfile(ctx context.Context, id string, req contractor.UpdateProfileRequest) (contractor.Contractor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contractors SET
			company_name = COALESCE($2, company_name),
			phone        = COALESCE($3, phone),
			address      = COALESCE($4, address),
			updated_at   = NOW()
		WHERE id = $1
		RETURNING ` + contractorColumns

	c, err := scanContractor(q.QueryRow(ctx, query, id, req.CompanyName, req.Phone, req.Address))
	if err != nil {
		if isNotFound(err) {
			return contractor.Contractor{}, contractor.ErrContractorNotFound
		}
		return contractor.Contractor{}, fmt.Errorf("failed to update contractor profile: %w", err)
	}
	return c, nil
}

// ExpireTrials implements contractor.ContractorRepository.
func (r *contractorRepository) ExpireTrials(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contractors
		SET subscription_status = $1, updated_at = NOW()
		WHERE subscription_status = $2 AND trial_ends_at <= $3
	`

	tag, err := q.Exec(ctx, query, contractor.SubscriptionExpired, contractor.SubscriptionTrial, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire trials: %w", err)
	}
	return tag.RowsAffected(), nil
}
