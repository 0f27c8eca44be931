package ses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nevernoshow/internal/models"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func sampleSubmission() (*models.Landlord, *models.Submission) {
	landlord := &models.Landlord{ID: "abc123", Name: "John Doe", Email: "john.doe@example.com"}
	submission := &models.Submission{
		ID:          "sub-1",
		LandlordID:  "abc123",
		TenantName:  "Alex <Tenant>",
		TenantEmail: "alex@example.com",
		FormData:    models.TenantFormData{PhoneNumber: "555-123-4567"},
		CredibilityScore: models.CredibilityScore{
			Total: 55, MaxPossible: 100, Percentage: 55, Grade: "D",
		},
		NoShowRisk: models.NoShowRisk{
			Score:          45,
			Level:          models.RiskHigh,
			Factors:        []string{"Low overall credibility score", "Poor credit history"},
			Recommendation: "Require additional security deposit or guarantor",
		},
		SubmittedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	return landlord, submission
}

func TestBuildSubmissionNotificationParams(t *testing.T) {
	landlord, submission := sampleSubmission()

	params := BuildSubmissionNotificationParams(landlord, submission, "https://app.example.com/")

	assert.Equal(t, "https://app.example.com/api/landlords/abc123/submissions/sub-1", params.ReviewURL)
	assert.Equal(t, 55, params.Percentage)
	assert.Equal(t, models.RiskHigh, params.RiskLevel)

	params = BuildSubmissionNotificationParams(landlord, submission, "")
	assert.Empty(t, params.ReviewURL)
}

func TestRenderSubmissionHTML_EscapesInput(t *testing.T) {
	landlord, submission := sampleSubmission()

	html, err := renderSubmissionHTML(BuildSubmissionNotificationParams(landlord, submission, ""))

	require.NoError(t, err)
	assert.Contains(t, html, "Alex &lt;Tenant&gt;")
	assert.NotContains(t, html, "Alex <Tenant>")
	assert.Contains(t, html, "<li>Poor credit history</li>")
	assert.NotContains(t, html, "Review Application")
}

func TestRenderSubmissionText(t *testing.T) {
	landlord, submission := sampleSubmission()

	text := renderSubmissionText(BuildSubmissionNotificationParams(landlord, submission, "https://app.example.com"))

	assert.Contains(t, text, "Hi John Doe,")
	assert.Contains(t, text, "Credibility: 55% (grade D)")
	assert.Contains(t, text, "No-show risk: High (45/100)")
	assert.Contains(t, text, "  - Low overall credibility score\n")
	assert.Contains(t, text, "Review the application: https://app.example.com/api/landlords/abc123/submissions/sub-1")
}

func TestNotifySubmission(t *testing.T) {
	client := &fakeSES{}
	svc := &Service{client: client, fromEmail: "noreply@nevernoshow.app"}
	landlord, submission := sampleSubmission()

	require.NoError(t, svc.NotifySubmission(context.Background(), landlord, submission))

	require.NotNil(t, client.input)
	assert.Equal(t, "noreply@nevernoshow.app", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"john.doe@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, []string{"alex@example.com"}, client.input.ReplyToAddresses)
	assert.Contains(t, aws.ToString(client.input.Message.Subject.Data), "55% credibility")
	assert.NotNil(t, client.input.Message.Body.Html)
	assert.NotNil(t, client.input.Message.Body.Text)
}

func TestNotifySubmission_Errors(t *testing.T) {
	landlord, submission := sampleSubmission()

	svc := &Service{client: &fakeSES{err: errors.New("throttled")}, fromEmail: "noreply@nevernoshow.app"}
	assert.Error(t, svc.NotifySubmission(context.Background(), landlord, submission))

	landlord.Email = ""
	assert.Error(t, svc.NotifySubmission(context.Background(), landlord, submission))
}

func TestLogNotifier(t *testing.T) {
	landlord, submission := sampleSubmission()
	core, logs := observer.New(zap.InfoLevel)
	n := LogNotifier{Logger: zap.New(core)}

	assert.NoError(t, n.NotifySubmission(context.Background(), landlord, submission))

	entries := logs.FilterMessage(LogNotifierMessage).All()
	require.Len(t, entries, 1)
	assert.Equal(t, landlord.ID, entries[0].ContextMap()["landlordId"])
	assert.Equal(t, submission.ID, entries[0].ContextMap()["submissionId"])
	assert.Empty(t, logs.FilterMessageSnippet("sent").All())
}
