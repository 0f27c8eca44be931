package database

import (
	"context"

	"nevernoshow/internal/models"
)

// Store adapts the repositories to the storage contract.
type Store struct {
	db          *DB
	landlords   *LandlordRepository
	tenants     *TenantRepository
	submissions *SubmissionRepository
}

// NewStore wraps an open connection pool.
func NewStore(db *DB) *Store {
	return &Store{
		db:          db,
		landlords:   NewLandlordRepository(db),
		tenants:     NewTenantRepository(db),
		submissions: NewSubmissionRepository(db),
	}
}

func (s *Store) GetLandlord(ctx context.Context, id string) (*models.Landlord, error) {
	return s.landlords.GetByID(ctx, id)
}

func (s *Store) CreateLandlord(ctx context.Context, landlord *models.Landlord) error {
	return s.landlords.Create(ctx, landlord)
}

func (s *Store) ListLandlords(ctx context.Context) ([]*models.Landlord, error) {
	return s.landlords.List(ctx)
}

func (s *Store) GetTenant(ctx context.Context, email string) (*models.Tenant, error) {
	return s.tenants.GetByEmail(ctx, email)
}

func (s *Store) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return s.tenants.Create(ctx, tenant)
}

func (s *Store) UpdateTenant(ctx context.Context, email string, update models.TenantUpdate) (*models.Tenant, error) {
	return s.tenants.Update(ctx, email, update)
}

func (s *Store) CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *Store) GetSubmission(ctx context.Context, id, landlordID string) (*models.Submission, error) {
	return s.submissions.GetByID(ctx, id, landlordID)
}

func (s *Store) GetLandlordSubmissions(ctx context.Context, landlordID string) ([]*models.Submission, error) {
	return s.submissions.GetByLandlord(ctx, landlordID)
}

func (s *Store) GetTenantHistory(ctx context.Context, email string) ([]*models.Submission, error) {
	return s.submissions.GetByTenant(ctx, email)
}

func (s *Store) Initialize(ctx context.Context) error {
	return s.db.Initialize(ctx)
}

func (s *Store) Seed(ctx context.Context) error {
	return s.db.Seed(ctx)
}

func (s *Store) Stats(ctx context.Context) (*models.StoreStats, error) {
	return s.db.Stats(ctx)
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

func (s *Store) Close() {
	s.db.Close()
}
