// Package submission runs tenant form intake: validation, landlord lookup,
// scoring, tenant statistics and persistence.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nevernoshow/internal/models"
	"nevernoshow/internal/services/scoring"
)

// ErrInvalidLandlord is returned when the form's landlordId does not resolve.
var ErrInvalidLandlord = errors.New("invalid landlord ID")

// ValidationError carries every failing form field.
type ValidationError struct {
	Fields models.FormErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields.Fields(), ", ")
}

// Repository is the slice of the storage contract intake needs.
type Repository interface {
	GetLandlord(ctx context.Context, id string) (*models.Landlord, error)
	GetTenant(ctx context.Context, email string) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	UpdateTenant(ctx context.Context, email string, update models.TenantUpdate) (*models.Tenant, error)
	CreateSubmission(ctx context.Context, submission *models.Submission) (*models.Submission, error)
}

// Notifier tells a landlord about a new submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, landlord *models.Landlord, submission *models.Submission) error
}

// Archiver keeps a copy of each submission report outside the primary store.
type Archiver interface {
	Archive(ctx context.Context, submission *models.Submission) error
}

// Service handles tenant form submissions.
type Service struct {
	repo     Repository
	policy   scoring.Policy
	mode     models.ValidationMode
	notifier Notifier
	archiver Archiver
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithValidationMode overrides the default loose validation.
func WithValidationMode(mode models.ValidationMode) Option {
	return func(s *Service) { s.mode = mode }
}

// WithNotifier sends landlord notifications after each stored submission.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithArchiver archives each stored submission.
func WithArchiver(a Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the UUID submission id generator.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService creates a submission service.
func NewService(repo Repository, policy scoring.Policy, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		policy: policy,
		mode:   models.ValidationLoose,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the active scoring profile name.
func (s *Service) Profile() string {
	return s.policy.Name()
}

// Submit validates, scores and stores one tenant form.
//
// A failed tenant statistics update is logged and ignored. A failed
// submission write fails the whole call.
func (s *Service) Submit(ctx context.Context, form *models.TenantFormData) (*models.Submission, error) {
	if errs := models.ValidateForm(form, s.mode); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	landlord, err := s.repo.GetLandlord(ctx, form.LandlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up landlord: %w", err)
	}
	if landlord == nil {
		return nil, ErrInvalidLandlord
	}

	score := s.policy.Credibility(form)
	risk := s.policy.Risk(form, score)
	now := s.now().UTC()

	if err := s.recordTenant(ctx, form, score.Percentage, now); err != nil {
		s.logger.Warn("Error handling tenant record",
			zap.String("email", form.Email),
			zap.Error(err),
		)
	}

	submission := &models.Submission{
		ID:               s.newID(),
		LandlordID:       form.LandlordID,
		TenantEmail:      form.Email,
		TenantName:       form.FullName,
		FormData:         *form,
		CredibilityScore: score,
		NoShowRisk:       risk,
		Profile:          s.policy.Name(),
		SubmittedAt:      now,
		Status:           models.SubmissionStatusPending,
	}

	saved, err := s.repo.CreateSubmission(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info("Submission stored",
		zap.String("submissionId", saved.ID),
		zap.String("landlordId", saved.LandlordID),
		zap.Int("percentage", score.Percentage),
		zap.String("riskLevel", risk.Level),
	)

	s.afterSave(ctx, landlord, saved)
	return saved, nil
}

// recordTenant creates the tenant on first sight and folds the new score into
// its running statistics afterwards.
func (s *Service) recordTenant(ctx context.Context, form *models.TenantFormData, percentage int, now time.Time) error {
	tenant, err := s.repo.GetTenant(ctx, form.Email)
	if err != nil {
		return err
	}
	if tenant == nil {
		return s.repo.CreateTenant(ctx, models.NewTenant(form.Email, form.FullName, percentage, now))
	}
	_, err = s.repo.UpdateTenant(ctx, form.Email, tenant.NextUpdate(form.FullName, percentage, now))
	return err
}

func (s *Service) afterSave(ctx context.Context, landlord *models.Landlord, saved *models.Submission) {
	if s.notifier != nil {
		if err := s.notifier.NotifySubmission(ctx, landlord, saved); err != nil {
			s.logger.Warn("Failed to notify landlord",
				zap.String("landlordId", landlord.ID),
				zap.String("submissionId", saved.ID),
				zap.Error(err),
			)
		}
	}
	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, saved); err != nil {
			s.logger.Warn("Failed to archive submission report",
				zap.String("submissionId", saved.ID),
				zap.Error(err),
			)
		}
	}
}
