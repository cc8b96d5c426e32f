package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/domain"
)

func TestOpenStore_File(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{
		Backend:  config.BackendFile,
		FilePath: filepath.Join(t.TempDir(), "db.json"),
	}}
	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	svc := NewServices(cfg, store)
	accounts, err := svc.Ledger.ListAccounts(context.Background(), domain.SummaryViewRunning)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestOpenStore_Unknown(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{Storage: config.StorageConfig{Backend: "mongo"}})
	assert.ErrorContains(t, err, "unknown storage backend")
}
