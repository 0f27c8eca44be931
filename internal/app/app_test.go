package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nevernoshow/internal/config"
	"nevernoshow/internal/models"
	"nevernoshow/internal/services/scoring"
)

func localConfig(t *testing.T) *config.Config {
	return &config.Config{
		StorageBackend: config.BackendLocal,
		LocalDataDir:   t.TempDir(),
		ScoringProfile: scoring.WeightedProfile,
		ValidationMode: string(models.ValidationLoose),
		Stage:          "test",
	}
}

func TestNew_LocalStorage(t *testing.T) {
	a, err := New(context.Background(), localConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Store.Initialize(context.Background()))
	require.NoError(t, a.Store.Seed(context.Background()))

	saved, err := a.Intake.Submit(context.Background(), &models.TenantFormData{
		FullName:    "Alex Rivera",
		Email:       "alex@example.com",
		PhoneNumber: "5551234567",
		LandlordID:  "abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "weighted", saved.Profile)
	assert.NotEmpty(t, saved.ID)
}

func TestNew_EmptySettingsUseDefaults(t *testing.T) {
	cfg := localConfig(t)
	cfg.ScoringProfile = ""
	cfg.ValidationMode = ""

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, scoring.WeightedProfile, a.Intake.Profile())
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	cfg := localConfig(t)
	cfg.ScoringProfile = "fancy"
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = localConfig(t)
	cfg.ValidationMode = "paranoid"
	_, err = New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = localConfig(t)
	cfg.StorageBackend = "mongo"
	_, err = New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
