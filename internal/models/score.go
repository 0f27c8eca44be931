// Package models defines the data structures for NeverNoShow.
package models

// Status labels used in credibility breakdowns.
const (
	StatusExcellent = "Excellent"
	StatusGood      = "Good"
	StatusFair      = "Fair"
	StatusPoor      = "Poor"
	StatusNoHistory = "No History"
)

// Breakdown category keys.
const (
	CategoryEmployment    = "employment"
	CategoryIncome        = "income"
	CategoryCredit        = "credit"
	CategoryEvictions     = "evictions"
	CategoryRentalHistory = "rentalHistory"
	CategoryAdditional    = "additional"

	CategoryContactInfo   = "contactInfo"
	CategoryHistory       = "history"
	CategoryCommunication = "communication"
)

// Risk levels.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
)

// CategoryScore is one line of a credibility breakdown.
type CategoryScore struct {
	Score  int    `json:"score"`
	Max    int    `json:"max"`
	Status string `json:"status,omitempty"`
}

// CredibilityScore summarises how credible an application looks.
// Percentage is always round(100*Total/MaxPossible).
type CredibilityScore struct {
	Total       int                      `json:"total"`
	MaxPossible int                      `json:"maxPossible"`
	Percentage  int                      `json:"percentage"`
	Grade       string                   `json:"grade,omitempty"`
	RiskLevel   string                   `json:"riskLevel,omitempty"`
	Breakdown   map[string]CategoryScore `json:"breakdown"`
}

// BreakdownTotal sums the breakdown scores.
func (c *CredibilityScore) BreakdownTotal() int {
	sum := 0
	for _, cat := range c.Breakdown {
		sum += cat.Score
	}
	return sum
}

// NoShowRisk estimates how likely the applicant is to miss an appointment.
type NoShowRisk struct {
	Score          int      `json:"score"`
	Level          string   `json:"level"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// GradeFor maps a percentage to a letter grade.
func GradeFor(percentage int) string {
	switch {
	case percentage >= 85:
		return "A"
	case percentage >= 75:
		return "B"
	case percentage >= 65:
		return "C"
	case percentage >= 55:
		return "D"
	default:
		return "F"
	}
}
