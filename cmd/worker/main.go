package main

import (
	"context"
	"log/slog"
	"os"

	"marketbridge/config"
	"marketbridge/internal/delivery"
	"marketbridge/internal/delivery/scheduler"
	"marketbridge/internal/delivery/worker"
	"marketbridge/internal/delivery/worker/handler"
	"marketbridge/internal/infra/firebaseapp"
	"marketbridge/internal/infra/lock"
	logs "marketbridge/internal/infra/log"
	"marketbridge/internal/infra/metrics"
	"marketbridge/internal/infra/notification"
	"marketbridge/internal/infra/persistence"
	"marketbridge/internal/infra/tracing"
	"marketbridge/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			firebaseapp.New,
		),
		tracing.Module,
		metrics.Module,
		persistence.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		notification.Module,
		lock.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewListingUpdater,
			impl.NewAccountUpdater,
			impl.NewDispatcher,
			impl.NewMaintenanceService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
			handler.NewJobHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewScheduler,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
