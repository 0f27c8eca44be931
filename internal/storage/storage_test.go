package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nevernoshow/internal/config"
)

func TestNew_Local(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendLocal, LocalDataDir: t.TempDir()}

	store, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Initialize(context.Background()))
	require.NoError(t, store.Seed(context.Background()))

	landlord, err := store.GetLandlord(context.Background(), "ghi789")
	require.NoError(t, err)
	require.NotNil(t, landlord)
	assert.Equal(t, "Demo Landlord", landlord.Name)
}

func TestNew_UnknownBackend(t *testing.T) {
	store, err := New(context.Background(), &config.Config{StorageBackend: "mongo"}, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, store)
}
