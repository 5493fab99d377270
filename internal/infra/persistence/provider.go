// Package persistence selects the document store adapter from configuration.
package persistence

import (
	"context"
	"log/slog"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/firestore"
	"marketbridge/internal/infra/persistence/memory"
	"marketbridge/internal/infra/persistence/postgres"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for DocumentStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewDocumentStore creates a DocumentStore based on configuration
func NewDocumentStore(params StoreParams) (repository.DocumentStore, error) {
	cfg := params.Config.Store
	logger := params.Logger.With(slog.String("store_provider", cfg.Provider))

	switch cfg.Provider {
	case constants.StoreProviderMemory:
		logger.Warn("Using in-memory document store, data is lost on restart")

		return memory.New(memory.WithMaxBatchSize(cfg.MaxBatchSize)), nil

	case constants.StoreProviderFirestore:
		client, err := firestore.NewClient(params.Ctx, params.Lc, params.App, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Firestore document store")

		return firestore.New(client, cfg.MaxBatchSize), nil

	case constants.StoreProviderPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL document store")

		return postgres.NewStore(params.Ctx, db, cfg.MaxBatchSize)

	default:
		return nil, errors.Errorf("unknown store provider: %s", cfg.Provider)
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewDocumentStore),
)
