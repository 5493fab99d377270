package main

import (
	"context"

	"marketbridge/config"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/infra/firebaseapp"
	logs "marketbridge/internal/infra/log"
	"marketbridge/internal/infra/notification"
	"marketbridge/internal/infra/persistence"
	"marketbridge/internal/infra/pubsub"
	"marketbridge/internal/usecase"
	"marketbridge/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// services is what the subcommands operate on
type services struct {
	Statistics  usecase.StatisticsUsecase
	Maintenance usecase.MaintenanceUsecase
	Dispatcher  usecase.EventDispatcher
	Publisher   service.EventPublisher
	Store       repository.DocumentStore
	Collections config.CollectionsConfig
}

// servicesFactory builds the services and returns a function releasing them
type servicesFactory func(ctx context.Context) (*services, func(), error)

// newServices wires the same providers as the binaries, without any delivery
func newServices(ctx context.Context) (*services, func(), error) {
	s := &services{}
	var cfg *config.Config

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			func() context.Context { return ctx },
			firebaseapp.New,
			impl.NewListingUpdater,
			impl.NewAccountUpdater,
			impl.NewDispatcher,
			impl.NewStatisticsService,
			impl.NewMaintenanceService,
		),
		persistence.Module,
		notification.Module,
		pubsub.Module,
		fx.Populate(&s.Statistics, &s.Maintenance, &s.Dispatcher, &s.Publisher, &s.Store, &cfg),
	)

	if err := app.Start(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "start marketctl")
	}

	s.Collections = cfg.Collections

	stop := func() {
		_ = app.Stop(context.Background())
	}

	return s, stop, nil
}
