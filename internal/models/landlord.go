// Package models defines the data structures for NeverNoShow.
package models

import (
	"time"
)

// Landlord verification states.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// Landlord owns submission links and receives tenant assessments.
type Landlord struct {
	ID                 string    `json:"id" db:"id"`
	Email              string    `json:"email" db:"email"`
	Name               string    `json:"name" db:"name"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	ActiveLinks        int       `json:"activeLinks" db:"active_links"`
	TotalSubmissions   int       `json:"totalSubmissions" db:"total_submissions"`
	VerificationStatus string    `json:"verificationStatus" db:"verification_status"`
}

// SampleLandlords returns the demo landlords seeded into a fresh store.
func SampleLandlords(now time.Time) []*Landlord {
	return []*Landlord{
		{ID: "abc123", Email: "john.doe@example.com", Name: "John Doe", CreatedAt: now, ActiveLinks: 1, VerificationStatus: VerificationVerified},
		{ID: "def456", Email: "jane.smith@example.com", Name: "Jane Smith", CreatedAt: now, ActiveLinks: 1, VerificationStatus: VerificationVerified},
		{ID: "ghi789", Email: "demo@landlord.com", Name: "Demo Landlord", CreatedAt: now, ActiveLinks: 1, VerificationStatus: VerificationVerified},
	}
}
