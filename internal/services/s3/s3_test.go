package s3service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nevernoshow/internal/models"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjects) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

type fakePresigner struct {
	expires time.Duration
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{
		URL:    "https://" + aws.ToString(params.Bucket) + ".s3.amazonaws.com/" + aws.ToString(params.Key) + "?X-Amz-Signature=abc",
		Method: "GET",
	}, nil
}

func newTestService() (*Service, *fakeObjects, *fakePresigner) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	presigner := &fakePresigner{}
	return &Service{client: objects, presigner: presigner, bucketName: "reports-bucket"}, objects, presigner
}

func TestReportKey(t *testing.T) {
	assert.Equal(t, "reports/abc123/sub-1.json", ReportKey("abc123", "sub-1"))
}

func TestArchiveAndDownload(t *testing.T) {
	svc, objects, _ := newTestService()
	submission := &models.Submission{
		ID:               "sub-1",
		LandlordID:       "abc123",
		TenantEmail:      "alex@example.com",
		CredibilityScore: models.CredibilityScore{Percentage: 82, Grade: "B"},
	}

	require.NoError(t, svc.Archive(context.Background(), submission))
	assert.Contains(t, objects.objects, "reports/abc123/sub-1.json")

	data, err := svc.DownloadFile(context.Background(), "reports/abc123/sub-1.json")
	require.NoError(t, err)

	var decoded models.Submission
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "alex@example.com", decoded.TenantEmail)
	assert.Equal(t, 82, decoded.CredibilityScore.Percentage)

	_, err = svc.DownloadFile(context.Background(), "reports/missing.json")
	assert.Error(t, err)
}

func TestArchive_UploadFailure(t *testing.T) {
	svc, objects, _ := newTestService()
	objects.putErr = errors.New("access denied")

	err := svc.Archive(context.Background(), &models.Submission{ID: "sub-1", LandlordID: "abc123"})
	assert.Error(t, err)
}

func TestReportURL(t *testing.T) {
	svc, _, presigner := newTestService()

	result, err := svc.ReportURL(context.Background(), "abc123", "sub-1")

	require.NoError(t, err)
	assert.Equal(t, "reports/abc123/sub-1.json", result.Key)
	assert.Contains(t, result.URL, "reports-bucket")
	assert.Equal(t, 15*time.Minute, presigner.expires)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), result.ExpiresAt, time.Minute)
}
