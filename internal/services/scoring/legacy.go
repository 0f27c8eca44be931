package scoring

import (
	"strings"

	"nevernoshow/internal/models"
)

// LegacyProfile names the short-form scoring profile.
const LegacyProfile = "legacy"

// Legacy base scores.
const (
	legacyContactInfoBase   = 85
	legacyHistoryBase       = 80
	legacyCommunicationBase = 75
	legacySubScoreMax       = 100
	legacyRiskBase          = 10
	legacyRiskCap           = 90
)

// Legacy risk factor messages.
const (
	FactorPreviousNoShow    = "History of previous no-shows"
	FactorLimitedAdditional = "Limited additional information provided"
)

// Legacy recommendations.
const (
	LegacyRecommendLow      = "Low risk tenant - proceed with confidence"
	LegacyRecommendModerate = "Moderate risk - consider additional screening or deposit"
	LegacyRecommendHigh     = "High risk - recommend thorough background check and higher deposit"
)

var premiumEmailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"outlook.com": true,
	"icloud.com":  true,
}

// LegacyPolicy scores the short form from three 0-100 sub-scores.
type LegacyPolicy struct{}

// Name implements Policy.
func (LegacyPolicy) Name() string { return LegacyProfile }

// Credibility implements Policy. The overall score is the rounded mean of the
// sub-scores, reported as Percentage with MaxPossible 300.
func (LegacyPolicy) Credibility(form *models.TenantFormData) models.CredibilityScore {
	contactInfo := legacyContactInfoBase
	history := legacyHistoryBase
	communication := legacyCommunicationBase

	if form.PreviousNoShow {
		history -= 30
		contactInfo -= 10
	}

	if len(strings.TrimSpace(form.AdditionalComments)) > 10 {
		communication += 15
	}

	if premiumEmailDomains[form.EmailDomain()] {
		contactInfo += 5
	}

	contactInfo = clamp(contactInfo, 0, legacySubScoreMax)
	history = clamp(history, 0, legacySubScoreMax)
	communication = clamp(communication, 0, legacySubScoreMax)

	total := contactInfo + history + communication
	maxPossible := 3 * legacySubScoreMax
	overall := percentOf(total, maxPossible)

	riskLevel := "low"
	if overall < 50 {
		riskLevel = "high"
	} else if overall < 75 {
		riskLevel = "medium"
	}

	return models.CredibilityScore{
		Total:       total,
		MaxPossible: maxPossible,
		Percentage:  overall,
		RiskLevel:   riskLevel,
		Breakdown: map[string]models.CategoryScore{
			models.CategoryContactInfo:   {Score: contactInfo, Max: legacySubScoreMax},
			models.CategoryHistory:       {Score: history, Max: legacySubScoreMax},
			models.CategoryCommunication: {Score: communication, Max: legacySubScoreMax},
		},
	}
}

// Risk implements Policy.
func (LegacyPolicy) Risk(form *models.TenantFormData, score models.CredibilityScore) models.NoShowRisk {
	risk := legacyRiskBase
	factors := []string{}

	if score.Percentage < 50 {
		risk += 40
		factors = append(factors, FactorLowCredibility)
	} else if score.Percentage < 75 {
		risk += 20
		factors = append(factors, FactorModerateCredibility)
	}

	if form.PreviousNoShow {
		risk += 35
		factors = append(factors, FactorPreviousNoShow)
	}

	if len(strings.TrimSpace(form.AdditionalComments)) < 5 {
		risk += 10
		factors = append(factors, FactorLimitedAdditional)
	}

	if risk > legacyRiskCap {
		risk = legacyRiskCap
	}

	level, recommendation := models.RiskHigh, LegacyRecommendHigh
	switch {
	case risk < 20:
		level, recommendation = models.RiskLow, LegacyRecommendLow
	case risk < 50:
		level, recommendation = models.RiskModerate, LegacyRecommendModerate
	}

	return models.NoShowRisk{
		Score:          risk,
		Level:          level,
		Factors:        factors,
		Recommendation: recommendation,
	}
}
