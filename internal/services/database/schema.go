package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"nevernoshow/internal/models"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS landlords (
		id VARCHAR(50) PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		active_links INT NOT NULL DEFAULT 0,
		total_submissions INT NOT NULL DEFAULT 0,
		verification_status VARCHAR(50) NOT NULL DEFAULT 'pending'
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		email VARCHAR(255) PRIMARY KEY,
		name VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_submission TIMESTAMPTZ,
		current_score INT NOT NULL DEFAULT 0,
		submission_count INT NOT NULL DEFAULT 0,
		average_score NUMERIC(5,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id VARCHAR(64) PRIMARY KEY,
		landlord_id VARCHAR(50) NOT NULL REFERENCES landlords(id),
		tenant_email VARCHAR(255) NOT NULL,
		tenant_name VARCHAR(255),
		form_data JSONB NOT NULL,
		credibility_score JSONB NOT NULL,
		no_show_risk JSONB NOT NULL,
		percentage INT NOT NULL,
		profile VARCHAR(20) NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_landlord ON submissions (landlord_id, submitted_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_tenant ON submissions (tenant_email, submitted_at DESC)`,
}

// Initialize creates the tables and indexes that do not exist yet.
func (db *DB) Initialize(ctx context.Context) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
		}
		return nil
	})
}

// Seed inserts the sample landlords, leaving existing rows untouched.
func (db *DB) Seed(ctx context.Context) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		for _, l := range models.SampleLandlords(time.Now().UTC()) {
			_, err := tx.Exec(ctx, `
				INSERT INTO landlords (id, email, name, created_at, active_links, total_submissions, verification_status)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO NOTHING`,
				l.ID, l.Email, l.Name, l.CreatedAt, l.ActiveLinks, l.TotalSubmissions, l.VerificationStatus,
			)
			if err != nil {
				return fmt.Errorf("failed to seed landlord %s: %w", l.ID, err)
			}
		}
		return nil
	})
}

// Stats counts rows in each table.
func (db *DB) Stats(ctx context.Context) (*models.StoreStats, error) {
	var stats models.StoreStats
	err := db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM landlords),
			(SELECT COUNT(*) FROM tenants),
			(SELECT COUNT(*) FROM submissions)`,
	).Scan(&stats.Landlords, &stats.Tenants, &stats.Submissions)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return &stats, nil
}
