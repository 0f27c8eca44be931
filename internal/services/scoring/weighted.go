package scoring

import (
	"nevernoshow/internal/models"
)

// WeightedProfile is the default scoring profile name.
const WeightedProfile = "weighted"

// Category weights; they add up to 100.
const (
	employmentMax    = 25
	incomeMax        = 20
	creditMax        = 20
	evictionsMax     = 15
	rentalHistoryMax = 10
	additionalMax    = 10
)

// Risk factor messages, in rule order.
const (
	FactorLowCredibility      = "Low overall credibility score"
	FactorModerateCredibility = "Moderate credibility concerns"
	FactorUnemployed          = "Unemployment increases no-show risk"
	FactorStudent             = "Student status may affect availability"
	FactorLowIncome           = "Low income may indicate financial instability"
	FactorPoorCredit          = "Poor credit history"
	FactorEvictions           = "Previous evictions indicate higher risk"
	FactorUrgentMove          = "Urgent moving situation"
	FactorNoEmergencyContact  = "No emergency contact provided"
)

// Recommendations per risk level.
const (
	RecommendLow      = "Proceed with standard screening process"
	RecommendModerate = "Consider additional verification or references"
	RecommendHigh     = "Require additional security deposit or guarantor"
	RecommendVeryHigh = "Consider alternative arrangements or decline application"
)

// WeightedPolicy scores the full screening form across six weighted categories.
type WeightedPolicy struct{}

// Name implements Policy.
func (WeightedPolicy) Name() string { return WeightedProfile }

// Credibility implements Policy.
func (WeightedPolicy) Credibility(form *models.TenantFormData) models.CredibilityScore {
	breakdown := map[string]models.CategoryScore{
		models.CategoryEmployment:    employmentScore(form.EmploymentStatus),
		models.CategoryIncome:        incomeScore(form.MonthlyIncome),
		models.CategoryCredit:        creditScore(form.CreditScore),
		models.CategoryEvictions:     evictionsScore(form.PreviousEvictions),
		models.CategoryRentalHistory: rentalHistoryScore(form.RentalHistory),
		models.CategoryAdditional:    additionalScore(form),
	}

	total, maxPossible := 0, 0
	for _, cat := range breakdown {
		total += cat.Score
		maxPossible += cat.Max
	}

	percentage := percentOf(total, maxPossible)
	return models.CredibilityScore{
		Total:       total,
		MaxPossible: maxPossible,
		Percentage:  percentage,
		Grade:       models.GradeFor(percentage),
		Breakdown:   breakdown,
	}
}

func employmentScore(status string) models.CategoryScore {
	switch status {
	case models.EmploymentEmployed:
		return models.CategoryScore{Score: 25, Max: employmentMax, Status: models.StatusExcellent}
	case models.EmploymentSelfEmployed:
		return models.CategoryScore{Score: 20, Max: employmentMax, Status: models.StatusGood}
	case models.EmploymentStudent:
		return models.CategoryScore{Score: 15, Max: employmentMax, Status: models.StatusFair}
	default:
		return models.CategoryScore{Score: 0, Max: employmentMax, Status: models.StatusPoor}
	}
}

// incomeScore treats an unparseable income as the lowest bracket.
func incomeScore(raw models.FlexString) models.CategoryScore {
	income, ok := raw.Int()
	switch {
	case ok && income >= 5000:
		return models.CategoryScore{Score: 20, Max: incomeMax, Status: models.StatusExcellent}
	case ok && income >= 3000:
		return models.CategoryScore{Score: 15, Max: incomeMax, Status: models.StatusGood}
	case ok && income >= 2000:
		return models.CategoryScore{Score: 10, Max: incomeMax, Status: models.StatusFair}
	default:
		return models.CategoryScore{Score: 5, Max: incomeMax, Status: models.StatusPoor}
	}
}

func creditScore(band string) models.CategoryScore {
	switch band {
	case models.CreditExcellent:
		return models.CategoryScore{Score: 20, Max: creditMax, Status: models.StatusExcellent}
	case models.CreditGood:
		return models.CategoryScore{Score: 15, Max: creditMax, Status: models.StatusGood}
	case models.CreditFair:
		return models.CategoryScore{Score: 10, Max: creditMax, Status: models.StatusFair}
	default:
		return models.CategoryScore{Score: 5, Max: creditMax, Status: models.StatusPoor}
	}
}

func evictionsScore(answer string) models.CategoryScore {
	switch answer {
	case models.EvictionsNone:
		return models.CategoryScore{Score: 15, Max: evictionsMax, Status: models.StatusExcellent}
	case models.EvictionsOlderThan3Years:
		return models.CategoryScore{Score: 10, Max: evictionsMax, Status: models.StatusGood}
	default:
		return models.CategoryScore{Score: 0, Max: evictionsMax, Status: models.StatusPoor}
	}
}

// rentalHistoryScore gives unparseable year counts the lowest scored bracket.
func rentalHistoryScore(raw models.FlexString) models.CategoryScore {
	if raw == "" || raw == models.NoRentalHistory {
		return models.CategoryScore{Score: 0, Max: rentalHistoryMax, Status: models.StatusNoHistory}
	}

	years, ok := raw.Int()
	switch {
	case ok && years >= 3:
		return models.CategoryScore{Score: 10, Max: rentalHistoryMax, Status: models.StatusExcellent}
	case ok && years >= 1:
		return models.CategoryScore{Score: 7, Max: rentalHistoryMax, Status: models.StatusGood}
	default:
		return models.CategoryScore{Score: 5, Max: rentalHistoryMax, Status: models.StatusFair}
	}
}

func additionalScore(form *models.TenantFormData) models.CategoryScore {
	score := 0
	if form.EmergencyContact != "" {
		score += 3
	}
	if form.MoveInDate != "" {
		score += 2
	}
	if form.ReasonForMoving != "" && form.ReasonForMoving != "other" {
		score += 3
	}
	if form.HasPets == "no" {
		score += 2
	}

	status := models.StatusFair
	if score >= 7 {
		status = models.StatusGood
	}
	return models.CategoryScore{Score: score, Max: additionalMax, Status: status}
}

// Risk implements Policy. Factors are appended in a fixed rule order and the
// level is taken from the clamped score the caller sees.
func (WeightedPolicy) Risk(form *models.TenantFormData, score models.CredibilityScore) models.NoShowRisk {
	risk := 0
	factors := []string{}
	add := func(points int, factor string) {
		risk += points
		factors = append(factors, factor)
	}

	if score.Percentage < 60 {
		add(30, FactorLowCredibility)
	} else if score.Percentage < 75 {
		add(15, FactorModerateCredibility)
	}

	switch form.EmploymentStatus {
	case models.EmploymentUnemployed:
		add(25, FactorUnemployed)
	case models.EmploymentStudent:
		add(10, FactorStudent)
	}

	// Unparseable income counts as zero here.
	if income, _ := form.MonthlyIncome.Int(); income < 2000 {
		add(20, FactorLowIncome)
	}

	if form.CreditScore == models.CreditPoor {
		add(15, FactorPoorCredit)
	}

	if form.PreviousEvictions == models.EvictionsYes {
		add(25, FactorEvictions)
	}

	if form.ReasonForMoving == "eviction" || form.ReasonForMoving == "emergency" {
		add(15, FactorUrgentMove)
	}

	if form.EmergencyContact == "" {
		add(10, FactorNoEmergencyContact)
	}

	clamped := clamp(risk, 0, 100)
	level, recommendation := weightedLevel(clamped)
	return models.NoShowRisk{
		Score:          clamped,
		Level:          level,
		Factors:        factors,
		Recommendation: recommendation,
	}
}

func weightedLevel(score int) (string, string) {
	switch {
	case score <= 20:
		return models.RiskLow, RecommendLow
	case score <= 40:
		return models.RiskModerate, RecommendModerate
	case score <= 60:
		return models.RiskHigh, RecommendHigh
	default:
		return models.RiskVeryHigh, RecommendVeryHigh
	}
}
