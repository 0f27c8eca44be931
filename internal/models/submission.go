// Package models defines the data structures for NeverNoShow.
package models

import (
	"time"
)

// SubmissionStatus represents the review state of a submission.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusReviewed SubmissionStatus = "reviewed"
)

// Submission is one scored tenant application for a landlord.
type Submission struct {
	ID               string           `json:"id" db:"id"`
	LandlordID       string           `json:"landlordId" db:"landlord_id"`
	TenantEmail      string           `json:"tenantEmail" db:"tenant_email"`
	TenantName       string           `json:"tenantName" db:"tenant_name"`
	FormData         TenantFormData   `json:"formData" db:"form_data"`
	CredibilityScore CredibilityScore `json:"credibilityScore" db:"credibility_score"`
	NoShowRisk       NoShowRisk       `json:"noShowRisk" db:"no_show_risk"`
	Profile          string           `json:"profile" db:"profile"`
	SubmittedAt      time.Time        `json:"submittedAt" db:"submitted_at"`
	Status           SubmissionStatus `json:"status" db:"status"`
}

// StoreStats counts the records held by a storage backend.
type StoreStats struct {
	Landlords   int `json:"landlords"`
	Tenants     int `json:"tenants"`
	Submissions int `json:"submissions"`
}
