// Package handlers exposes the NeverNoShow endpoints over net/http and API
// Gateway. Every endpoint is implemented once on API and returns a Reply that
// the transports encode.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"nevernoshow/internal/models"
	s3service "nevernoshow/internal/services/s3"
	"nevernoshow/internal/services/submission"
	"nevernoshow/internal/storage"
)

// Reply is a status code and a JSON-encodable body.
type Reply struct {
	Status int
	Body   interface{}
}

// ReportLinker returns download links for archived submission reports.
type ReportLinker interface {
	ReportURL(ctx context.Context, landlordID, submissionID string) (*s3service.PresignedURLResult, error)
}

// API implements the endpoints on top of a store and the intake service.
type API struct {
	store   storage.Store
	intake  *submission.Service
	reports ReportLinker
	logger  *zap.Logger
	backend string
	stage   string
	now     func() time.Time
}

// Option configures an API.
type Option func(*API)

// WithReports attaches presigned report links to submission details.
func WithReports(r ReportLinker) Option {
	return func(a *API) { a.reports = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *API) { a.logger = l }
}

// WithBackendName labels the storage backend in health responses.
func WithBackendName(name string) Option {
	return func(a *API) { a.backend = name }
}

// WithStage labels the deployment stage in health responses.
func WithStage(stage string) Option {
	return func(a *API) { a.stage = stage }
}

// NewAPI creates the endpoint set.
func NewAPI(store storage.Store, intake *submission.Service, opts ...Option) *API {
	a := &API{
		store:  store,
		intake: intake,
		logger: zap.NewNop(),
		stage:  "dev",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MessageResponse is the body of simple success and failure replies.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse is the response structure for health checks.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Stage     string `json:"stage"`
	Storage   string `json:"storage,omitempty"`
	Database  string `json:"database"`
	Profile   string `json:"profile,omitempty"`
}

// LandlordResponse is the body of a landlord lookup.
type LandlordResponse struct {
	Exists   bool             `json:"exists"`
	Landlord *models.Landlord `json:"landlord,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// SubmissionListResponse lists submissions newest first.
type SubmissionListResponse struct {
	Success     bool                 `json:"success"`
	Count       int                  `json:"count"`
	Submissions []*models.Submission `json:"submissions"`
}

// SubmissionDetailResponse returns one submission.
type SubmissionDetailResponse struct {
	Success    bool               `json:"success"`
	Submission *models.Submission `json:"submission"`
	ReportURL  string             `json:"reportUrl,omitempty"`
}

// SubmitResponse is returned after a successful intake.
type SubmitResponse struct {
	Success          bool                    `json:"success"`
	Message          string                  `json:"message"`
	SubmissionID     string                  `json:"submissionId"`
	CredibilityScore models.CredibilityScore `json:"credibilityScore"`
	NoShowRisk       models.NoShowRisk       `json:"noShowRisk"`
	Timestamp        string                  `json:"timestamp"`
}

// ValidationResponse reports every failing form field.
type ValidationResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  models.FormErrors `json:"errors"`
}

// TenantSummary is the public view of a tenant's running statistics.
type TenantSummary struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CurrentScore    int       `json:"currentScore"`
	AverageScore    float64   `json:"averageScore"`
	SubmissionCount int       `json:"submissionCount"`
	LastSubmission  time.Time `json:"lastSubmission"`
	MemberSince     time.Time `json:"memberSince"`
}

// TenantResponse is the body of a tenant lookup.
type TenantResponse struct {
	Success    bool           `json:"success"`
	HasProfile bool           `json:"hasProfile"`
	Message    string         `json:"message,omitempty"`
	Tenant     *TenantSummary `json:"tenant,omitempty"`
}

// InitResponse is returned by the database init endpoint.
type InitResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (a *API) timestamp() string {
	return a.now().UTC().Format(time.RFC3339)
}

func internalError(err error) Reply {
	return Reply{
		Status: http.StatusInternalServerError,
		Body:   MessageResponse{Success: false, Message: "Internal server error", Error: err.Error()},
	}
}

func message(status int, msg string) Reply {
	return Reply{Status: status, Body: MessageResponse{Success: status < 400, Message: msg}}
}

// Health reports storage connectivity.
func (a *API) Health(ctx context.Context) Reply {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: a.timestamp(),
		Service:   "nevernoshow",
		Version:   getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
		Stage:     a.stage,
		Storage:   a.backend,
		Database:  "not configured",
	}
	if a.intake != nil {
		response.Profile = a.intake.Profile()
	}

	if a.store != nil {
		if err := a.store.HealthCheck(ctx); err != nil {
			a.logger.Warn("Storage health check failed", zap.Error(err))
			response.Database = "disconnected"
			response.Status = "degraded"
		} else {
			response.Database = "connected"
		}
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return Reply{Status: status, Body: response}
}

// GetLandlord looks up a landlord. An unknown id is not an error.
func (a *API) GetLandlord(ctx context.Context, landlordID string) Reply {
	landlord, err := a.store.GetLandlord(ctx, landlordID)
	if err != nil {
		a.logger.Error("Error retrieving landlord", zap.String("landlordId", landlordID), zap.Error(err))
		return internalError(err)
	}
	if landlord == nil {
		return Reply{Status: http.StatusOK, Body: LandlordResponse{Exists: false, Message: "Landlord not found"}}
	}
	return Reply{Status: http.StatusOK, Body: LandlordResponse{Exists: true, Landlord: landlord}}
}

// LandlordSubmissions lists a landlord's submissions.
func (a *API) LandlordSubmissions(ctx context.Context, landlordID string) Reply {
	landlord, err := a.store.GetLandlord(ctx, landlordID)
	if err != nil {
		return internalError(err)
	}
	if landlord == nil {
		return message(http.StatusNotFound, "Landlord not found")
	}

	submissions, err := a.store.GetLandlordSubmissions(ctx, landlordID)
	if err != nil {
		a.logger.Error("Error retrieving submissions", zap.String("landlordId", landlordID), zap.Error(err))
		return internalError(err)
	}
	return Reply{Status: http.StatusOK, Body: SubmissionListResponse{Success: true, Count: len(submissions), Submissions: submissions}}
}

// LandlordSubmission returns one of a landlord's submissions.
func (a *API) LandlordSubmission(ctx context.Context, landlordID, submissionID string) Reply {
	s, err := a.store.GetSubmission(ctx, submissionID, landlordID)
	if err != nil {
		return internalError(err)
	}
	if s == nil {
		return message(http.StatusNotFound, "Submission not found")
	}

	response := SubmissionDetailResponse{Success: true, Submission: s}
	if a.reports != nil {
		link, err := a.reports.ReportURL(ctx, landlordID, submissionID)
		if err != nil {
			a.logger.Warn("Failed to presign report URL", zap.String("submissionId", submissionID), zap.Error(err))
		} else {
			response.ReportURL = link.URL
		}
	}
	return Reply{Status: http.StatusOK, Body: response}
}

// Submit runs intake for a JSON-encoded tenant form.
func (a *API) Submit(ctx context.Context, body []byte) Reply {
	var form models.TenantFormData
	if err := json.Unmarshal(body, &form); err != nil {
		return message(http.StatusBadRequest, "Invalid request body")
	}

	a.logger.Info("Processing tenant form submission", zap.String("landlordId", form.LandlordID))

	saved, err := a.intake.Submit(ctx, &form)
	var verr *submission.ValidationError
	switch {
	case errors.As(err, &verr):
		return Reply{Status: http.StatusBadRequest, Body: ValidationResponse{Success: false, Message: "Validation failed", Errors: verr.Fields}}
	case errors.Is(err, submission.ErrInvalidLandlord):
		return message(http.StatusBadRequest, "Invalid landlord ID")
	case err != nil:
		a.logger.Error("Error processing submission", zap.Error(err))
		return internalError(err)
	}

	return Reply{Status: http.StatusOK, Body: SubmitResponse{
		Success:          true,
		Message:          "Form submitted successfully",
		SubmissionID:     saved.ID,
		CredibilityScore: saved.CredibilityScore,
		NoShowRisk:       saved.NoShowRisk,
		Timestamp:        a.timestamp(),
	}}
}

// GetTenant returns a tenant's credibility summary.
func (a *API) GetTenant(ctx context.Context, email string) Reply {
	email = strings.TrimSpace(email)
	if email == "" {
		return message(http.StatusBadRequest, "Email parameter is required")
	}

	tenant, err := a.store.GetTenant(ctx, email)
	if err != nil {
		a.logger.Error("Error retrieving tenant credibility", zap.Error(err))
		return internalError(err)
	}
	if tenant == nil {
		return Reply{Status: http.StatusNotFound, Body: TenantResponse{Success: false, HasProfile: false, Message: "Tenant not found"}}
	}

	return Reply{Status: http.StatusOK, Body: TenantResponse{
		Success:    true,
		HasProfile: true,
		Tenant: &TenantSummary{
			Name:            tenant.Name,
			Email:           tenant.Email,
			CurrentScore:    tenant.CurrentScore,
			AverageScore:    tenant.AverageScore,
			SubmissionCount: tenant.SubmissionCount,
			LastSubmission:  tenant.LastSubmission,
			MemberSince:     tenant.CreatedAt,
		},
	}}
}

// TenantHistory lists a tenant's submissions.
func (a *API) TenantHistory(ctx context.Context, email string) Reply {
	email = strings.TrimSpace(email)
	if email == "" {
		return message(http.StatusBadRequest, "Email parameter is required")
	}

	submissions, err := a.store.GetTenantHistory(ctx, email)
	if err != nil {
		return internalError(err)
	}
	return Reply{Status: http.StatusOK, Body: SubmissionListResponse{Success: true, Count: len(submissions), Submissions: submissions}}
}

// InitDatabase creates the schema and seeds the sample landlords.
func (a *API) InitDatabase(ctx context.Context) Reply {
	a.logger.Info("Initializing database and tables")

	if err := a.store.Initialize(ctx); err != nil {
		a.logger.Error("Error initializing database", zap.Error(err))
		return Reply{Status: http.StatusInternalServerError, Body: MessageResponse{Success: false, Message: "Failed to initialize database", Error: err.Error()}}
	}
	if err := a.store.Seed(ctx); err != nil {
		a.logger.Error("Error seeding database", zap.Error(err))
		return Reply{Status: http.StatusInternalServerError, Body: MessageResponse{Success: false, Message: "Failed to initialize database", Error: err.Error()}}
	}

	return Reply{Status: http.StatusOK, Body: InitResponse{
		Success:   true,
		Message:   "Database initialized and seeded successfully",
		Timestamp: a.timestamp(),
	}}
}

// getEnvOrDefault returns environment variable or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
