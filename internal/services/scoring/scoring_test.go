package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nevernoshow/internal/models"
	"nevernoshow/internal/services/scoring"
)

func strongForm() *models.TenantFormData {
	return &models.TenantFormData{
		FullName:          "Alex Tenant",
		Email:             "alex@example.com",
		PhoneNumber:       "555-123-4567",
		LandlordID:        "abc123",
		EmploymentStatus:  "employed",
		MonthlyIncome:     "5000",
		CreditScore:       "excellent",
		PreviousEvictions: "no",
		RentalHistory:     "3",
		EmergencyContact:  "x",
		MoveInDate:        "2024-01-01",
		ReasonForMoving:   "job",
		HasPets:           "no",
	}
}

func weakForm() *models.TenantFormData {
	f := strongForm()
	f.EmploymentStatus = "other"
	f.MonthlyIncome = "0"
	f.CreditScore = "poor"
	f.PreviousEvictions = "yes"
	f.RentalHistory = "no-history"
	f.EmergencyContact = ""
	f.MoveInDate = ""
	f.ReasonForMoving = ""
	f.HasPets = ""
	return f
}

func TestNew(t *testing.T) {
	p, err := scoring.New("")
	require.NoError(t, err)
	assert.Equal(t, scoring.WeightedProfile, p.Name())

	p, err = scoring.New(scoring.LegacyProfile)
	require.NoError(t, err)
	assert.Equal(t, scoring.LegacyProfile, p.Name())

	_, err = scoring.New("fancy")
	assert.Error(t, err)
}

func TestWeighted_StrongApplicant(t *testing.T) {
	var p scoring.WeightedPolicy

	score := p.Credibility(strongForm())

	assert.Equal(t, 100, score.Total)
	assert.Equal(t, 100, score.MaxPossible)
	assert.Equal(t, 100, score.Percentage)
	assert.Equal(t, "A", score.Grade)
	assert.Len(t, score.Breakdown, 6)
	assert.Equal(t, models.StatusGood, score.Breakdown[models.CategoryAdditional].Status)

	risk := p.Risk(strongForm(), score)
	assert.Equal(t, 0, risk.Score)
	assert.Equal(t, models.RiskLow, risk.Level)
	assert.Empty(t, risk.Factors)
	assert.Equal(t, scoring.RecommendLow, risk.Recommendation)
}

func TestWeighted_WeakApplicant(t *testing.T) {
	var p scoring.WeightedPolicy
	form := weakForm()

	score := p.Credibility(form)

	assert.Equal(t, 10, score.Total)
	assert.Equal(t, 10, score.Percentage)
	assert.Equal(t, "F", score.Grade)

	expected := map[string]int{
		models.CategoryEmployment:    0,
		models.CategoryIncome:        5,
		models.CategoryCredit:        5,
		models.CategoryEvictions:     0,
		models.CategoryRentalHistory: 0,
		models.CategoryAdditional:    0,
	}
	for cat, want := range expected {
		assert.Equal(t, want, score.Breakdown[cat].Score, cat)
	}
	assert.Equal(t, models.StatusNoHistory, score.Breakdown[models.CategoryRentalHistory].Status)

	risk := p.Risk(form, score)
	assert.Equal(t, []string{
		scoring.FactorLowCredibility,
		scoring.FactorLowIncome,
		scoring.FactorPoorCredit,
		scoring.FactorEvictions,
		scoring.FactorNoEmergencyContact,
	}, risk.Factors)
	assert.Equal(t, 100, risk.Score)
	assert.Equal(t, models.RiskVeryHigh, risk.Level)
	assert.Equal(t, scoring.RecommendVeryHigh, risk.Recommendation)
}

func TestWeighted_RiskIsClampedBeforeLevel(t *testing.T) {
	var p scoring.WeightedPolicy
	form := weakForm()
	form.EmploymentStatus = "unemployed"
	form.ReasonForMoving = "eviction"

	risk := p.Risk(form, p.Credibility(form))

	assert.Equal(t, 100, risk.Score)
	assert.Len(t, risk.Factors, 7)
	assert.Equal(t, scoring.FactorUnemployed, risk.Factors[1])
	assert.Equal(t, scoring.FactorUrgentMove, risk.Factors[5])
	assert.Equal(t, models.RiskVeryHigh, risk.Level)
}

func TestWeighted_LevelThresholds(t *testing.T) {
	var p scoring.WeightedPolicy
	strong := p.Credibility(strongForm())

	tests := []struct {
		name   string
		mutate func(f *models.TenantFormData)
		score  int
		level  string
	}{
		{"student", func(f *models.TenantFormData) { f.EmploymentStatus = "student" }, 10, models.RiskLow},
		{"no emergency contact and poor credit", func(f *models.TenantFormData) {
			f.EmergencyContact = ""
			f.CreditScore = "poor"
		}, 25, models.RiskModerate},
		{"evictions and urgent move", func(f *models.TenantFormData) {
			f.PreviousEvictions = "yes"
			f.ReasonForMoving = "emergency"
		}, 40, models.RiskModerate},
		{"evictions urgent move and low income", func(f *models.TenantFormData) {
			f.PreviousEvictions = "yes"
			f.ReasonForMoving = "emergency"
			f.MonthlyIncome = "1500"
		}, 60, models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := strongForm()
			tt.mutate(form)

			// Keep credibility fixed so only the listed rules fire.
			risk := p.Risk(form, strong)
			assert.Equal(t, tt.score, risk.Score)
			assert.Equal(t, tt.level, risk.Level)
		})
	}
}

func TestWeighted_ModerateCredibility(t *testing.T) {
	var p scoring.WeightedPolicy
	risk := p.Risk(strongForm(), models.CredibilityScore{Percentage: 70})

	assert.Equal(t, []string{scoring.FactorModerateCredibility}, risk.Factors)
	assert.Equal(t, 15, risk.Score)
}

func TestWeighted_MalformedNumbers(t *testing.T) {
	var p scoring.WeightedPolicy
	form := strongForm()
	form.MonthlyIncome = "lots"
	form.RentalHistory = "a while"

	score := p.Credibility(form)

	assert.Equal(t, 5, score.Breakdown[models.CategoryIncome].Score)
	assert.Equal(t, 5, score.Breakdown[models.CategoryRentalHistory].Score)
	assert.Equal(t, models.StatusFair, score.Breakdown[models.CategoryRentalHistory].Status)

	risk := p.Risk(form, score)
	assert.Contains(t, risk.Factors, scoring.FactorLowIncome)
}

func TestWeighted_IncomeAndHistoryBrackets(t *testing.T) {
	var p scoring.WeightedPolicy

	tests := []struct {
		income, history string
		incomeScore     int
		historyScore    int
	}{
		{"5000", "3", 20, 10},
		{"4999", "2", 15, 7},
		{"3000", "1", 15, 7},
		{"2000", "0", 10, 5},
		{"1999", "", 5, 0},
	}

	for _, tt := range tests {
		form := strongForm()
		form.MonthlyIncome = models.FlexString(tt.income)
		form.RentalHistory = models.FlexString(tt.history)

		score := p.Credibility(form)
		assert.Equal(t, tt.incomeScore, score.Breakdown[models.CategoryIncome].Score, tt.income)
		assert.Equal(t, tt.historyScore, score.Breakdown[models.CategoryRentalHistory].Score, tt.history)
	}
}

func TestWeighted_HugeNumbersLandInTopBracket(t *testing.T) {
	var p scoring.WeightedPolicy

	for _, v := range []string{"9223372036854775808", "18446744073709551616", "99999999999999999999"} {
		form := strongForm()
		form.MonthlyIncome = models.FlexString(v)
		form.RentalHistory = models.FlexString(v)

		score := p.Credibility(form)
		assert.Equal(t, 20, score.Breakdown[models.CategoryIncome].Score, v)
		assert.Equal(t, 10, score.Breakdown[models.CategoryRentalHistory].Score, v)

		risk := p.Risk(form, score)
		assert.NotContains(t, risk.Factors, scoring.FactorLowIncome, v)
	}
}

func TestWeighted_Invariants(t *testing.T) {
	var p scoring.WeightedPolicy

	employment := []string{"employed", "self-employed", "student", "unemployed", "other", ""}
	credit := []string{"excellent", "good", "fair", "poor", ""}
	evictions := []string{"no", "more-than-3-years", "yes", ""}
	history := []string{"no-history", "0", "1", "5", "junk"}

	for _, e := range employment {
		for _, c := range credit {
			for _, ev := range evictions {
				for _, h := range history {
					form := strongForm()
					form.EmploymentStatus = e
					form.CreditScore = c
					form.PreviousEvictions = ev
					form.RentalHistory = models.FlexString(h)

					score := p.Credibility(form)
					require.Equal(t, 100, score.MaxPossible)
					require.Equal(t, score.BreakdownTotal(), score.Total)
					require.LessOrEqual(t, score.Total, score.MaxPossible)
					require.GreaterOrEqual(t, score.Percentage, 0)
					require.LessOrEqual(t, score.Percentage, 100)

					first := p.Risk(form, score)
					second := p.Risk(form, score)
					require.Equal(t, first, second)
					require.GreaterOrEqual(t, first.Score, 0)
					require.LessOrEqual(t, first.Score, 100)
				}
			}
		}
	}
}

func TestLegacy_EngagedApplicant(t *testing.T) {
	var p scoring.LegacyPolicy
	form := &models.TenantFormData{
		Email:              "sam@gmail.com",
		AdditionalComments: "Looking forward to the viewing",
	}

	score := p.Credibility(form)

	assert.Equal(t, 90, score.Breakdown[models.CategoryContactInfo].Score)
	assert.Equal(t, 80, score.Breakdown[models.CategoryHistory].Score)
	assert.Equal(t, 90, score.Breakdown[models.CategoryCommunication].Score)
	assert.Equal(t, 260, score.Total)
	assert.Equal(t, 300, score.MaxPossible)
	assert.Equal(t, 87, score.Percentage)
	assert.Equal(t, "low", score.RiskLevel)
	assert.Empty(t, score.Grade)

	risk := p.Risk(form, score)
	assert.Equal(t, 10, risk.Score)
	assert.Equal(t, models.RiskLow, risk.Level)
	assert.Empty(t, risk.Factors)
	assert.Equal(t, scoring.LegacyRecommendLow, risk.Recommendation)
}

func TestLegacy_PreviousNoShow(t *testing.T) {
	var p scoring.LegacyPolicy
	form := &models.TenantFormData{Email: "sam@example.com", PreviousNoShow: true}

	score := p.Credibility(form)

	assert.Equal(t, 200, score.Total)
	assert.Equal(t, 67, score.Percentage)
	assert.Equal(t, "medium", score.RiskLevel)

	risk := p.Risk(form, score)
	assert.Equal(t, []string{
		scoring.FactorModerateCredibility,
		scoring.FactorPreviousNoShow,
		scoring.FactorLimitedAdditional,
	}, risk.Factors)
	assert.Equal(t, 75, risk.Score)
	assert.Equal(t, models.RiskHigh, risk.Level)
	assert.Equal(t, scoring.LegacyRecommendHigh, risk.Recommendation)
}

func TestLegacy_RiskCap(t *testing.T) {
	var p scoring.LegacyPolicy

	risk := p.Risk(&models.TenantFormData{PreviousNoShow: true}, models.CredibilityScore{Percentage: 10})

	assert.Equal(t, 90, risk.Score)
	assert.Len(t, risk.Factors, 3)
}
