package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nevernoshow/internal/models"
)

const landlordColumns = `id, email, name, created_at, active_links, total_submissions, verification_status`

// LandlordRepository handles landlord database operations.
type LandlordRepository struct {
	db *DB
}

// NewLandlordRepository creates a new landlord repository.
func NewLandlordRepository(db *DB) *LandlordRepository {
	return &LandlordRepository{db: db}
}

// Create inserts a new landlord.
func (r *LandlordRepository) Create(ctx context.Context, landlord *models.Landlord) error {
	status := landlord.VerificationStatus
	if status == "" {
		status = models.VerificationPending
	}

	err := r.db.exec(ctx, `
		INSERT INTO landlords (`+landlordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		landlord.ID,
		landlord.Email,
		landlord.Name,
		landlord.CreatedAt.UTC(),
		landlord.ActiveLinks,
		landlord.TotalSubmissions,
		status,
	)
	if err != nil {
		return fmt.Errorf("failed to create landlord: %w", err)
	}
	return nil
}

// GetByID retrieves a landlord by id.
func (r *LandlordRepository) GetByID(ctx context.Context, id string) (*models.Landlord, error) {
	query := `SELECT ` + landlordColumns + ` FROM landlords WHERE id = $1`

	landlord, err := scanLandlord(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}
	return landlord, nil
}

// List retrieves every landlord ordered by id.
func (r *LandlordRepository) List(ctx context.Context) ([]*models.Landlord, error) {
	rows, err := r.db.query(ctx, `SELECT `+landlordColumns+` FROM landlords ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query landlords: %w", err)
	}
	defer rows.Close()

	landlords := []*models.Landlord{}
	for rows.Next() {
		landlord, err := scanLandlord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan landlord: %w", err)
		}
		landlords = append(landlords, landlord)
	}
	return landlords, rows.Err()
}

func scanLandlord(row rowScanner) (*models.Landlord, error) {
	var l models.Landlord
	err := row.Scan(
		&l.ID,
		&l.Email,
		&l.Name,
		&l.CreatedAt,
		&l.ActiveLinks,
		&l.TotalSubmissions,
		&l.VerificationStatus,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
