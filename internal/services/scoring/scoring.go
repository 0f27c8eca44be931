// Package scoring computes credibility and no-show risk for tenant applications.
//
// Two rule sets exist because the tenant form has shipped in two shapes. The
// weighted policy scores the full screening form (employment, income, credit,
// evictions, rental history, extras). The legacy policy scores the short form
// that only asks about previous no-shows and free-text comments. Both are pure
// and safe for concurrent use.
package scoring

import (
	"fmt"
	"math"

	"nevernoshow/internal/models"
)

// Policy is a complete scoring rule set.
type Policy interface {
	// Name identifies the policy in stored submissions.
	Name() string
	// Credibility scores the application.
	Credibility(form *models.TenantFormData) models.CredibilityScore
	// Risk derives the no-show risk from the form and its credibility score.
	Risk(form *models.TenantFormData, score models.CredibilityScore) models.NoShowRisk
}

// New returns the policy registered under profile.
func New(profile string) (Policy, error) {
	switch profile {
	case "", WeightedProfile:
		return WeightedPolicy{}, nil
	case LegacyProfile:
		return LegacyPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring profile %q", profile)
	}
}

// percentOf mirrors a round-half-up percentage over a non-negative ratio.
func percentOf(total, max int) int {
	if max <= 0 {
		return 0
	}
	return roundHalfUp(float64(total) * 100 / float64(max))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
