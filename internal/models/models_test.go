package models_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nevernoshow/internal/models"
)

func validForm() *models.TenantFormData {
	return &models.TenantFormData{
		FullName:    "Alex Tenant",
		Email:       "alex@example.com",
		PhoneNumber: "(555) 123-4567",
		LandlordID:  "abc123",
	}
}

func TestValidateForm_Valid(t *testing.T) {
	assert.Nil(t, models.ValidateForm(validForm(), models.ValidationLoose))
	assert.Nil(t, models.ValidateForm(validForm(), models.ValidationStrict))
}

func TestValidateForm_ReportsEveryFailingField(t *testing.T) {
	form := &models.TenantFormData{FullName: " A ", Email: "not-an-email", PhoneNumber: "12-34"}

	errs := models.ValidateForm(form, models.ValidationLoose)

	require.NotNil(t, errs)
	assert.Equal(t, []string{
		models.FieldEmail,
		models.FieldFullName,
		models.FieldLandlordID,
		models.FieldPhoneNumber,
	}, errs.Fields())
	assert.Equal(t, models.MsgPhoneRequired, errs[models.FieldPhoneNumber])
}

func TestValidateForm_SingleField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *models.TenantFormData)
		field  string
	}{
		{"empty name", func(f *models.TenantFormData) { f.FullName = "" }, models.FieldFullName},
		{"one letter name", func(f *models.TenantFormData) { f.FullName = "  J  " }, models.FieldFullName},
		{"missing email", func(f *models.TenantFormData) { f.Email = "" }, models.FieldEmail},
		{"email without at", func(f *models.TenantFormData) { f.Email = "alex.example.com" }, models.FieldEmail},
		{"short phone", func(f *models.TenantFormData) { f.PhoneNumber = "555-12" }, models.FieldPhoneNumber},
		{"letters only phone", func(f *models.TenantFormData) { f.PhoneNumber = "call me" }, models.FieldPhoneNumber},
		{"missing landlord", func(f *models.TenantFormData) { f.LandlordID = "" }, models.FieldLandlordID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			errs := models.ValidateForm(form, models.ValidationLoose)
			assert.Equal(t, []string{tt.field}, errs.Fields())
		})
	}
}

func TestValidateForm_LooseAcceptsWhatStrictRejects(t *testing.T) {
	form := validForm()
	form.Email = "alex@localhost"
	form.PhoneNumber = "5551234"

	assert.Nil(t, models.ValidateForm(form, models.ValidationLoose))

	errs := models.ValidateForm(form, models.ValidationStrict)
	assert.Equal(t, []string{models.FieldEmail, models.FieldPhoneNumber}, errs.Fields())
}

func TestParseValidationMode(t *testing.T) {
	mode, err := models.ParseValidationMode("")
	require.NoError(t, err)
	assert.Equal(t, models.ValidationLoose, mode)

	mode, err = models.ParseValidationMode(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, models.ValidationStrict, mode)

	_, err = models.ParseValidationMode("paranoid")
	assert.Error(t, err)
}

func TestFlexString_Unmarshal(t *testing.T) {
	var form models.TenantFormData
	payload := `{"monthlyIncome": 4200, "rentalHistory": "3", "fullName": "Sam"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &form))

	assert.Equal(t, models.FlexString("4200"), form.MonthlyIncome)
	assert.Equal(t, models.FlexString("3"), form.RentalHistory)

	require.NoError(t, json.Unmarshal([]byte(`{"monthlyIncome": null}`), &form))
	assert.Equal(t, models.FlexString(""), form.MonthlyIncome)
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		n     int
		ok    bool
	}{
		{"5000", 5000, true},
		{"  42 ", 42, true},
		{"3.5", 3, true},
		{"2years", 2, true},
		{"-7", -7, true},
		{"+8", 8, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"9223372036854775807", math.MaxInt, true},
		{"9223372036854775808", math.MaxInt, true},
		{"18446744073709551616", math.MaxInt, true},
		{"99999999999999999999", math.MaxInt, true},
		{"-9223372036854775809", math.MinInt, true},
		{"-99999999999999999999x", math.MinInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, ok := models.ParseLeadingInt(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestGradeFor_Monotonic(t *testing.T) {
	rank := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4}
	prev := -1
	for p := 0; p <= 100; p++ {
		r := rank[models.GradeFor(p)]
		assert.GreaterOrEqual(t, r, prev, "grade dropped at %d", p)
		prev = r
	}
	assert.Equal(t, "A", models.GradeFor(85))
	assert.Equal(t, "B", models.GradeFor(84))
	assert.Equal(t, "D", models.GradeFor(55))
	assert.Equal(t, "F", models.GradeFor(54))
}

func TestRunningAverage(t *testing.T) {
	assert.Equal(t, 90.0, models.RunningAverage(80, 2, 100))
	assert.Equal(t, 83.33, models.RunningAverage(75, 3, 100))
	assert.Equal(t, 55.0, models.RunningAverage(0, 0, 55))
}

func TestTenant_NextUpdateKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)

	tenant := models.NewTenant("alex@example.com", "Alex", 80, created)
	update := tenant.NextUpdate("Alex T.", 100, now)

	assert.Equal(t, 2, update.SubmissionCount)
	assert.Equal(t, 90.0, update.AverageScore)
	assert.Equal(t, 100, update.CurrentScore)

	tenant.Apply(update)
	assert.Equal(t, "alex@example.com", tenant.Email)
	assert.Equal(t, created, tenant.CreatedAt)
	assert.Equal(t, now, tenant.LastSubmission)
	assert.Equal(t, "Alex T.", tenant.Name)
}

func TestEmailDomain(t *testing.T) {
	f := &models.TenantFormData{Email: "sam@gmail.com"}
	assert.Equal(t, "gmail.com", f.EmailDomain())

	f.Email = "no-at-sign"
	assert.Equal(t, "", f.EmailDomain())

	f.Email = "a@b.com@c.com"
	assert.Equal(t, "b.com", f.EmailDomain())
}
