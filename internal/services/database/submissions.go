package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nevernoshow/internal/models"
)

const submissionColumns = `id, landlord_id, tenant_email, tenant_name, form_data, credibility_score,
	no_show_risk, profile, submitted_at, status`

// SubmissionRepository handles submission database operations.
type SubmissionRepository struct {
	db *DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission and bumps the landlord's submission counter in
// the same transaction.
func (r *SubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	formJSON, err := json.Marshal(s.FormData)
	if err != nil {
		return fmt.Errorf("failed to marshal form data: %w", err)
	}
	scoreJSON, err := json.Marshal(s.CredibilityScore)
	if err != nil {
		return fmt.Errorf("failed to marshal credibility score: %w", err)
	}
	riskJSON, err := json.Marshal(s.NoShowRisk)
	if err != nil {
		return fmt.Errorf("failed to marshal no-show risk: %w", err)
	}

	return r.db.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO submissions (`+submissionColumns+`, percentage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			s.ID,
			s.LandlordID,
			s.TenantEmail,
			s.TenantName,
			string(formJSON),
			string(scoreJSON),
			string(riskJSON),
			s.Profile,
			s.SubmittedAt.UTC(),
			string(s.Status),
			s.CredibilityScore.Percentage,
		)
		if err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		_, err = tx.Exec(ctx,
			"UPDATE landlords SET total_submissions = total_submissions + 1 WHERE id = $1",
			s.LandlordID)
		if err != nil {
			return fmt.Errorf("failed to update landlord submission count: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a submission that belongs to the given landlord.
func (r *SubmissionRepository) GetByID(ctx context.Context, id, landlordID string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1 AND landlord_id = $2`

	submission, err := scanSubmission(r.db.QueryRow(ctx, query, id, landlordID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return submission, nil
}

// GetByLandlord retrieves a landlord's submissions, newest first.
func (r *SubmissionRepository) GetByLandlord(ctx context.Context, landlordID string) ([]*models.Submission, error) {
	return r.list(ctx, `
		SELECT `+submissionColumns+` FROM submissions
		WHERE landlord_id = $1
		ORDER BY submitted_at DESC`, landlordID)
}

// GetByTenant retrieves a tenant's submissions, newest first.
func (r *SubmissionRepository) GetByTenant(ctx context.Context, email string) ([]*models.Submission, error) {
	return r.list(ctx, `
		SELECT `+submissionColumns+` FROM submissions
		WHERE tenant_email = $1
		ORDER BY submitted_at DESC`, email)
}

func (r *SubmissionRepository) list(ctx context.Context, query string, arg string) ([]*models.Submission, error) {
	rows, err := r.db.query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*models.Submission{}
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var s models.Submission
	var tenantName *string
	var status string
	var formJSON, scoreJSON, riskJSON []byte

	err := row.Scan(
		&s.ID,
		&s.LandlordID,
		&s.TenantEmail,
		&tenantName,
		&formJSON,
		&scoreJSON,
		&riskJSON,
		&s.Profile,
		&s.SubmittedAt,
		&status,
	)
	if err != nil {
		return nil, err
	}

	if tenantName != nil {
		s.TenantName = *tenantName
	}
	s.Status = models.SubmissionStatus(status)

	if err := json.Unmarshal(formJSON, &s.FormData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form data: %w", err)
	}
	if err := json.Unmarshal(scoreJSON, &s.CredibilityScore); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credibility score: %w", err)
	}
	if err := json.Unmarshal(riskJSON, &s.NoShowRisk); err != nil {
		return nil, fmt.Errorf("failed to unmarshal no-show risk: %w", err)
	}
	return &s, nil
}
