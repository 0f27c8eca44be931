// Package app assembles the NeverNoShow services from configuration.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nevernoshow/internal/config"
	"nevernoshow/internal/handlers"
	"nevernoshow/internal/models"
	s3service "nevernoshow/internal/services/s3"
	"nevernoshow/internal/services/scoring"
	"nevernoshow/internal/services/ses"
	"nevernoshow/internal/services/submission"
	"nevernoshow/internal/storage"
)

// App holds the wired services of one process.
type App struct {
	Config *config.Config
	Store  storage.Store
	Intake *submission.Service
	API    *handlers.API
}

// New opens storage and builds the intake service and endpoint set.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	policy, err := scoring.New(cfg.ScoringProfile)
	if err != nil {
		return nil, err
	}

	mode, err := models.ParseValidationMode(cfg.ValidationMode)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	opts := []submission.Option{
		submission.WithValidationMode(mode),
		submission.WithLogger(logger),
	}
	apiOpts := []handlers.Option{
		handlers.WithLogger(logger),
		handlers.WithBackendName(cfg.StorageBackend),
		handlers.WithStage(cfg.Stage),
	}

	if cfg.SESSenderEmail != "" {
		mailer, err := ses.NewService(ctx, cfg)
		if err != nil {
			store.Close()
			return nil, err
		}
		opts = append(opts, submission.WithNotifier(mailer))
	} else {
		opts = append(opts, submission.WithNotifier(ses.LogNotifier{Logger: logger}))
	}

	if cfg.S3Bucket != "" {
		reports, err := s3service.NewService(ctx, cfg)
		if err != nil {
			store.Close()
			return nil, err
		}
		opts = append(opts, submission.WithArchiver(reports))
		apiOpts = append(apiOpts, handlers.WithReports(reports))
	}

	intake := submission.NewService(store, policy, opts...)

	logger.Info("Services initialized",
		zap.String("storage", cfg.StorageBackend),
		zap.String("profile", policy.Name()),
		zap.String("validation", string(mode)),
		zap.Bool("email", cfg.SESSenderEmail != ""),
		zap.Bool("archive", cfg.S3Bucket != ""),
	)

	return &App{
		Config: cfg,
		Store:  store,
		Intake: intake,
		API:    handlers.NewAPI(store, intake, apiOpts...),
	}, nil
}

// Close releases storage.
func (a *App) Close() {
	a.Store.Close()
}
