// Package localdb stores records as JSON files for local development.
//
// Each collection lives in its own file under the data directory and is
// rewritten in full on every change. A mutex keeps concurrent requests in one
// process from interleaving a read-modify-write of the same file.
package localdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"nevernoshow/internal/models"
)

const (
	landlordsCollection   = "landlords"
	tenantsCollection     = "tenants"
	submissionsCollection = "submissions"
)

// DB is a file-backed store.
type DB struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// New creates the data directory if needed and returns a store rooted at it.
func New(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &DB{dir: dir, now: time.Now}, nil
}

// Dir returns the data directory.
func (db *DB) Dir() string {
	return db.dir
}

func (db *DB) path(collection string) string {
	return filepath.Join(db.dir, collection+".json")
}

// read loads a collection; a missing file is an empty collection.
func read[T any](db *DB, collection string) ([]*T, error) {
	data, err := os.ReadFile(db.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return []*T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	var items []*T
	if len(data) == 0 {
		return []*T{}, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return items, nil
}

// write replaces a collection file via a temp file and rename.
func write[T any](db *DB, collection string, items []*T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(db.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), db.path(collection)); err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	return nil
}

// GetLandlord returns the landlord with the given id.
func (db *DB) GetLandlord(ctx context.Context, id string) (*models.Landlord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	landlords, err := read[models.Landlord](db, landlordsCollection)
	if err != nil {
		return nil, err
	}
	for _, l := range landlords {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

// CreateLandlord appends a landlord.
func (db *DB) CreateLandlord(ctx context.Context, landlord *models.Landlord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	landlords, err := read[models.Landlord](db, landlordsCollection)
	if err != nil {
		return err
	}
	return write(db, landlordsCollection, append(landlords, landlord))
}

// ListLandlords returns every landlord in insertion order.
func (db *DB) ListLandlords(ctx context.Context) ([]*models.Landlord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return read[models.Landlord](db, landlordsCollection)
}

// GetTenant returns the tenant with the given email.
func (db *DB) GetTenant(ctx context.Context, email string) (*models.Tenant, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tenants, err := read[models.Tenant](db, tenantsCollection)
	if err != nil {
		return nil, err
	}
	for _, t := range tenants {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, nil
}

// CreateTenant appends a tenant.
func (db *DB) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tenants, err := read[models.Tenant](db, tenantsCollection)
	if err != nil {
		return err
	}
	return write(db, tenantsCollection, append(tenants, tenant))
}

// UpdateTenant applies an update to an existing tenant. It returns nil when no
// tenant has that email.
func (db *DB) UpdateTenant(ctx context.Context, email string, update models.TenantUpdate) (*models.Tenant, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tenants, err := read[models.Tenant](db, tenantsCollection)
	if err != nil {
		return nil, err
	}
	for _, t := range tenants {
		if t.Email == email {
			t.Apply(update)
			if err := write(db, tenantsCollection, tenants); err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	return nil, nil
}

// CreateSubmission appends a submission and bumps the owning landlord's
// submission counter. Both collections are read before either is written, and
// the submission write is undone when the counter cannot be stored.
func (db *DB) CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	submissions, err := read[models.Submission](db, submissionsCollection)
	if err != nil {
		return nil, err
	}
	landlords, err := read[models.Landlord](db, landlordsCollection)
	if err != nil {
		return nil, err
	}

	var owner *models.Landlord
	for _, l := range landlords {
		if l.ID == submission.LandlordID {
			owner = l
			break
		}
	}

	updated := append(submissions[:len(submissions):len(submissions)], submission)
	if err := write(db, submissionsCollection, updated); err != nil {
		return nil, err
	}
	if owner == nil {
		return submission, nil
	}

	owner.TotalSubmissions++
	if err := write(db, landlordsCollection, landlords); err != nil {
		if rbErr := write(db, submissionsCollection, submissions); rbErr != nil {
			return nil, fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return nil, err
	}
	return submission, nil
}

// GetSubmission returns a submission only if it belongs to the landlord.
func (db *DB) GetSubmission(ctx context.Context, id, landlordID string) (*models.Submission, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	submissions, err := read[models.Submission](db, submissionsCollection)
	if err != nil {
		return nil, err
	}
	for _, s := range submissions {
		if s.ID == id && s.LandlordID == landlordID {
			return s, nil
		}
	}
	return nil, nil
}

// GetLandlordSubmissions returns a landlord's submissions, newest first.
func (db *DB) GetLandlordSubmissions(ctx context.Context, landlordID string) ([]*models.Submission, error) {
	return db.filterSubmissions(func(s *models.Submission) bool { return s.LandlordID == landlordID })
}

// GetTenantHistory returns a tenant's submissions, newest first.
func (db *DB) GetTenantHistory(ctx context.Context, email string) ([]*models.Submission, error) {
	return db.filterSubmissions(func(s *models.Submission) bool { return s.TenantEmail == email })
}

func (db *DB) filterSubmissions(keep func(*models.Submission) bool) ([]*models.Submission, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	submissions, err := read[models.Submission](db, submissionsCollection)
	if err != nil {
		return nil, err
	}

	matched := []*models.Submission{}
	for _, s := range submissions {
		if keep(s) {
			matched = append(matched, s)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})
	return matched, nil
}

// Initialize creates empty collection files that do not exist yet.
func (db *DB) Initialize(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := os.MkdirAll(db.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	for _, c := range []string{landlordsCollection, tenantsCollection, submissionsCollection} {
		if _, err := os.Stat(db.path(c)); err == nil {
			continue
		}
		if err := os.WriteFile(db.path(c), []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", c, err)
		}
	}
	return nil
}

// Seed inserts the sample landlords that are missing.
func (db *DB) Seed(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	landlords, err := read[models.Landlord](db, landlordsCollection)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(landlords))
	for _, l := range landlords {
		existing[l.ID] = true
	}

	added := false
	for _, l := range models.SampleLandlords(db.now().UTC()) {
		if !existing[l.ID] {
			landlords = append(landlords, l)
			added = true
		}
	}
	if !added {
		return nil
	}
	return write(db, landlordsCollection, landlords)
}

// Stats counts the records in each collection.
func (db *DB) Stats(ctx context.Context) (*models.StoreStats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	landlords, err := read[models.Landlord](db, landlordsCollection)
	if err != nil {
		return nil, err
	}
	tenants, err := read[models.Tenant](db, tenantsCollection)
	if err != nil {
		return nil, err
	}
	submissions, err := read[models.Submission](db, submissionsCollection)
	if err != nil {
		return nil, err
	}

	return &models.StoreStats{
		Landlords:   len(landlords),
		Tenants:     len(tenants),
		Submissions: len(submissions),
	}, nil
}

// HealthCheck verifies the data directory is usable.
func (db *DB) HealthCheck(ctx context.Context) error {
	info, err := os.Stat(db.dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", db.dir)
	}
	return nil
}

// Close is a no-op.
func (db *DB) Close() {}
