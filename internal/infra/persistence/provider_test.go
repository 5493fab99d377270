package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"
	"marketbridge/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, provider string) StoreParams {
	cfg := &config.Config{}
	cfg.Store.Provider = provider
	cfg.Store.MaxBatchSize = 3

	return StoreParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewDocumentStore_Memory(t *testing.T) {
	store, err := NewDocumentStore(newParams(t, constants.StoreProviderMemory))
	require.NoError(t, err)

	assert.IsType(t, &memory.Store{}, store)
	assert.Equal(t, 3, store.MaxBatchSize())
}

func TestNewDocumentStore_FirestoreWithoutFirebase(t *testing.T) {
	_, err := NewDocumentStore(newParams(t, constants.StoreProviderFirestore))
	assert.Error(t, err)
}

func TestNewDocumentStore_PostgresWithoutConfig(t *testing.T) {
	_, err := NewDocumentStore(newParams(t, constants.StoreProviderPostgres))
	assert.Error(t, err)
}

func TestNewDocumentStore_Unknown(t *testing.T) {
	_, err := NewDocumentStore(newParams(t, "dynamo"))
	assert.Error(t, err)
}
