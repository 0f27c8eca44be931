package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"nevernoshow/internal/models"
)

const tenantColumns = `email, name, created_at, last_submission, current_score, submission_count, average_score`

// TenantRepository handles tenant database operations.
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new tenant repository.
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a tenant.
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	err := r.db.exec(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tenant.Email,
		tenant.Name,
		tenant.CreatedAt.UTC(),
		tenant.LastSubmission.UTC(),
		tenant.CurrentScore,
		tenant.SubmissionCount,
		tenant.AverageScore,
	)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// GetByEmail retrieves a tenant by email.
func (r *TenantRepository) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE email = $1`

	tenant, err := scanTenant(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

// Update writes the running statistics of an existing tenant. Email and
// created_at are never changed.
func (r *TenantRepository) Update(ctx context.Context, email string, update models.TenantUpdate) (*models.Tenant, error) {
	query := `
		UPDATE tenants SET
			name = $2,
			last_submission = $3,
			current_score = $4,
			submission_count = $5,
			average_score = $6
		WHERE email = $1
		RETURNING ` + tenantColumns

	tenant, err := scanTenant(r.db.QueryRow(ctx, query,
		email,
		update.Name,
		update.LastSubmission.UTC(),
		update.CurrentScore,
		update.SubmissionCount,
		update.AverageScore,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return tenant, nil
}

func scanTenant(row rowScanner) (*models.Tenant, error) {
	var t models.Tenant
	var name *string
	var lastSubmission *time.Time

	err := row.Scan(
		&t.Email,
		&name,
		&t.CreatedAt,
		&lastSubmission,
		&t.CurrentScore,
		&t.SubmissionCount,
		&t.AverageScore,
	)
	if err != nil {
		return nil, err
	}

	if name != nil {
		t.Name = *name
	}
	if lastSubmission != nil {
		t.LastSubmission = *lastSubmission
	}
	return &t, nil
}
