// Package storage defines the persistence contract shared by every backend and
// picks the backend configured for the process.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nevernoshow/internal/config"
	"nevernoshow/internal/models"
	"nevernoshow/internal/services/database"
	"nevernoshow/internal/services/localdb"
)

// Store persists landlords, tenants and submissions.
//
// Lookups return (nil, nil) when the record does not exist. List methods
// return submissions newest first.
type Store interface {
	GetLandlord(ctx context.Context, id string) (*models.Landlord, error)
	CreateLandlord(ctx context.Context, landlord *models.Landlord) error
	ListLandlords(ctx context.Context) ([]*models.Landlord, error)

	GetTenant(ctx context.Context, email string) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	UpdateTenant(ctx context.Context, email string, update models.TenantUpdate) (*models.Tenant, error)

	CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error)
	GetSubmission(ctx context.Context, id, landlordID string) (*models.Submission, error)
	GetLandlordSubmissions(ctx context.Context, landlordID string) ([]*models.Submission, error)
	GetTenantHistory(ctx context.Context, email string) ([]*models.Submission, error)

	// Initialize creates missing tables or collections.
	Initialize(ctx context.Context) error
	// Seed inserts the sample landlords unless they already exist.
	Seed(ctx context.Context) error
	Stats(ctx context.Context) (*models.StoreStats, error)
	HealthCheck(ctx context.Context) error
	Close()
}

// New opens the backend selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StorageBackend {
	case config.BackendLocal:
		logger.Info("Using local JSON storage", zap.String("dir", cfg.LocalDataDir))
		db, err := localdb.New(cfg.LocalDataDir)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendSQL:
		logger.Info("Using PostgreSQL storage", zap.String("host", cfg.DBHost))
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return database.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

var (
	_ Store = (*localdb.DB)(nil)
	_ Store = (*database.Store)(nil)
)
