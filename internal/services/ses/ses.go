// Package ses provides landlord email notifications via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "nevernoshow/internal/config"
	"nevernoshow/internal/models"
	"nevernoshow/internal/utils"
)

// sendAPI is the part of the SES client used here.
type sendAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Service handles SES email operations
type Service struct {
	client       sendAPI
	fromEmail    string
	dashboardURL string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// SubmissionNotificationParams contains data for the landlord notification email
type SubmissionNotificationParams struct {
	LandlordName   string
	LandlordEmail  string
	TenantName     string
	TenantEmail    string
	TenantPhone    string
	Percentage     int
	Grade          string
	RiskLevel      string
	RiskScore      int
	Factors        []string
	Recommendation string
	SubmittedAt    time.Time
	ReviewURL      string
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appCfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:       ses.NewFromConfig(cfg),
		fromEmail:    appCfg.SESSenderEmail,
		dashboardURL: appCfg.DashboardURL,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	// Add HTML body if provided
	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	// Add text body if provided
	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	messageID := aws.ToString(result.MessageId)
	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", messageID),
	)

	return &SendEmailResult{
		MessageID: messageID,
		SentAt:    time.Now(),
	}, nil
}

// NotifySubmission emails the landlord a summary of a new tenant application.
func (s *Service) NotifySubmission(ctx context.Context, landlord *models.Landlord, submission *models.Submission) error {
	if landlord.Email == "" {
		return fmt.Errorf("landlord %s has no email address", landlord.ID)
	}

	params := BuildSubmissionNotificationParams(landlord, submission, s.dashboardURL)

	htmlBody, err := renderSubmissionHTML(params)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	_, err = s.SendEmail(ctx, EmailParams{
		To:       landlord.Email,
		Subject:  notificationSubject(params),
		HTMLBody: htmlBody,
		TextBody: renderSubmissionText(params),
		ReplyTo:  submission.TenantEmail,
	})
	return err
}

// BuildSubmissionNotificationParams creates notification params from a stored submission
func BuildSubmissionNotificationParams(landlord *models.Landlord, submission *models.Submission, dashboardURL string) SubmissionNotificationParams {
	params := SubmissionNotificationParams{
		LandlordName:   landlord.Name,
		LandlordEmail:  landlord.Email,
		TenantName:     submission.TenantName,
		TenantEmail:    submission.TenantEmail,
		TenantPhone:    submission.FormData.PhoneNumber,
		Percentage:     submission.CredibilityScore.Percentage,
		Grade:          submission.CredibilityScore.Grade,
		RiskLevel:      submission.NoShowRisk.Level,
		RiskScore:      submission.NoShowRisk.Score,
		Factors:        submission.NoShowRisk.Factors,
		Recommendation: submission.NoShowRisk.Recommendation,
		SubmittedAt:    submission.SubmittedAt,
	}

	if dashboardURL != "" {
		params.ReviewURL = fmt.Sprintf("%s/api/landlords/%s/submissions/%s",
			strings.TrimRight(dashboardURL, "/"),
			url.PathEscape(landlord.ID),
			url.PathEscape(submission.ID),
		)
	}
	return params
}

func notificationSubject(params SubmissionNotificationParams) string {
	return fmt.Sprintf("New tenant application from %s (%d%% credibility, %s risk)",
		params.TenantName, params.Percentage, params.RiskLevel)
}

var submissionTemplate = template.Must(template.New("submission_notification").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #2563eb 0%, #7c3aed 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .label { font-size: 12px; color: #999; }
        .value { font-weight: bold; color: #333; }
        .badge { display: inline-block; background: #2563eb; color: white; padding: 5px 12px; border-radius: 20px; font-weight: bold; }
        .cta-button { display: inline-block; background: #2563eb; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>New Tenant Application</h1>
        <p>Hi {{.LandlordName}}, {{.TenantName}} just completed your screening form</p>
    </div>
    <div class="content">
        <div class="card">
            <div class="label">Applicant</div>
            <div class="value">{{.TenantName}} &lt;{{.TenantEmail}}&gt;{{if .TenantPhone}} / {{.TenantPhone}}{{end}}</div>
        </div>
        <div class="card">
            <div class="label">Credibility</div>
            <div class="value"><span class="badge">{{.Percentage}}%{{if .Grade}} ({{.Grade}}){{end}}</span></div>
        </div>
        <div class="card">
            <div class="label">No-show risk</div>
            <div class="value">{{.RiskLevel}} ({{.RiskScore}}/100)</div>
            {{if .Factors}}
            <ul>
                {{range .Factors}}<li>{{.}}</li>{{end}}
            </ul>
            {{end}}
            <p>{{.Recommendation}}</p>
        </div>
        {{if .ReviewURL}}
        <div style="text-align: center;">
            <a href="{{.ReviewURL}}" class="cta-button">Review Application</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>This email was sent by NeverNoShow</p>
        <p>You received this because a tenant used your application link.</p>
    </div>
</body>
</html>`))

// renderSubmissionHTML renders the HTML email template
func renderSubmissionHTML(params SubmissionNotificationParams) (string, error) {
	var buf bytes.Buffer
	if err := submissionTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderSubmissionText renders plain text version
func renderSubmissionText(params SubmissionNotificationParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", params.LandlordName))
	buf.WriteString(fmt.Sprintf("%s (%s) just completed your screening form.\n\n", params.TenantName, params.TenantEmail))

	buf.WriteString(fmt.Sprintf("Credibility: %d%%", params.Percentage))
	if params.Grade != "" {
		buf.WriteString(fmt.Sprintf(" (grade %s)", params.Grade))
	}
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("No-show risk: %s (%d/100)\n", params.RiskLevel, params.RiskScore))

	for _, factor := range params.Factors {
		buf.WriteString(fmt.Sprintf("  - %s\n", factor))
	}
	buf.WriteString(fmt.Sprintf("\nRecommendation: %s\n\n", params.Recommendation))

	if params.ReviewURL != "" {
		buf.WriteString(fmt.Sprintf("Review the application: %s\n\n", params.ReviewURL))
	}

	buf.WriteString("Best regards,\nNeverNoShow\n")

	return buf.String()
}

// LogNotifier records notifications in the log instead of sending email. It
// is used when no SES sender is configured.
type LogNotifier struct {
	Logger *zap.Logger
}

// LogNotifierMessage is logged in place of each skipped email.
const LogNotifierMessage = "Email notification skipped (no SES sender configured)"

// NotifySubmission logs the notification that would have been sent.
func (n LogNotifier) NotifySubmission(ctx context.Context, landlord *models.Landlord, submission *models.Submission) error {
	n.Logger.Info(LogNotifierMessage,
		zap.String("landlordId", landlord.ID),
		zap.String("landlordEmail", landlord.Email),
		zap.String("submissionId", submission.ID),
		zap.Int("percentage", submission.CredibilityScore.Percentage),
		zap.String("riskLevel", submission.NoShowRisk.Level),
	)
	return nil
}
