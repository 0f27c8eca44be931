// Package models defines the data structures for NeverNoShow.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant holds running statistics for every submission made with one email.
type Tenant struct {
	Email           string    `json:"email" db:"email"`
	Name            string    `json:"name" db:"name"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	LastSubmission  time.Time `json:"lastSubmission" db:"last_submission"`
	CurrentScore    int       `json:"currentScore" db:"current_score"`
	SubmissionCount int       `json:"submissionCount" db:"submission_count"`
	AverageScore    float64   `json:"averageScore" db:"average_score"`
}

// TenantUpdate carries the fields revised on every new submission.
type TenantUpdate struct {
	Name            string    `json:"name"`
	LastSubmission  time.Time `json:"lastSubmission"`
	CurrentScore    int       `json:"currentScore"`
	SubmissionCount int       `json:"submissionCount"`
	AverageScore    float64   `json:"averageScore"`
}

// NewTenant builds the record for an email's first submission.
func NewTenant(email, name string, percentage int, now time.Time) *Tenant {
	return &Tenant{
		Email:           email,
		Name:            name,
		CreatedAt:       now,
		LastSubmission:  now,
		CurrentScore:    percentage,
		SubmissionCount: 1,
		AverageScore:    float64(percentage),
	}
}

// NextUpdate folds a new percentage into the tenant's running statistics.
func (t *Tenant) NextUpdate(name string, percentage int, now time.Time) TenantUpdate {
	count := t.SubmissionCount + 1
	return TenantUpdate{
		Name:            name,
		LastSubmission:  now,
		CurrentScore:    percentage,
		SubmissionCount: count,
		AverageScore:    RunningAverage(t.AverageScore, count, percentage),
	}
}

// Apply copies an update onto the tenant, keeping email and createdAt.
func (t *Tenant) Apply(u TenantUpdate) {
	t.Name = u.Name
	t.LastSubmission = u.LastSubmission
	t.CurrentScore = u.CurrentScore
	t.SubmissionCount = u.SubmissionCount
	t.AverageScore = u.AverageScore
}

// RunningAverage returns (oldAverage*(n-1)+value)/n rounded half up to 2
// decimals, where n already includes the new value. The result fits the
// NUMERIC(5,2) average_score column exactly.
func RunningAverage(oldAverage float64, n int, value int) float64 {
	if n <= 0 {
		return float64(value)
	}
	sum := decimal.NewFromFloat(oldAverage).Mul(decimal.NewFromInt(int64(n - 1))).Add(decimal.NewFromInt(int64(value)))
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
}
