package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"marketbridge/config"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/usecase"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
)

// maintenanceService implements the MaintenanceUsecase interface.
type maintenanceService struct {
	store       repository.DocumentStore
	recorder    service.EventRecorder
	collections config.CollectionsConfig
	now         func() time.Time
	logger      *slog.Logger
}

// MaintenanceServiceParams holds dependencies for the maintenance service, injected by Fx.
type MaintenanceServiceParams struct {
	fx.In

	Store    repository.DocumentStore
	Recorder service.EventRecorder `optional:"true"`
	Config   *config.Config
	Logger   *slog.Logger
}

// NewMaintenanceService creates a new maintenance service instance
func NewMaintenanceService(params MaintenanceServiceParams) usecase.MaintenanceUsecase {
	return &maintenanceService{
		store:       params.Store,
		recorder:    params.Recorder,
		collections: params.Config.Collections,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      params.Logger,
	}
}

// ResetDailyViews sets dailyViews to 0 and stamps lastDailyReset on every listing. Keys are
// committed in chunks of the store's batch capacity; the report is returned even when a
// batch fails so callers can see how far the run got.
func (s *maintenanceService) ResetDailyViews(ctx context.Context) (report *entity.ResetReport, err error) {
	ctx, span := tracer().Start(ctx, "ResetDailyViews")
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	report = &entity.ResetReport{StartedAt: s.now()}

	defer func() {
		report.FinishedAt = s.now()
		span.SetAttributes(
			attribute.Int("reset.scanned", report.Scanned),
			attribute.Int("reset.updated", report.Updated),
			attribute.Int("reset.batches", report.Batches),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "daily reset aborted")
		}
		span.End()
		if s.recorder != nil {
			s.recorder.RecordDailyReset(report.Updated, err)
		}
	}()

	keys, err := s.store.ListKeys(ctx, s.collections.Listings)
	if err != nil {
		return report, errors.Wrap(err, "list listing keys")
	}
	report.Scanned = len(keys)

	size := s.store.MaxBatchSize()
	if size <= 0 {
		return report, errors.Errorf("invalid batch size %d", size)
	}

	for chunk := range slices.Chunk(keys, size) {
		writes := make([]repository.BatchWrite, 0, len(chunk))
		for _, key := range chunk {
			writes = append(writes, repository.BatchWrite{
				Collection: s.collections.Listings,
				Key:        key,
				Updates: []repository.Update{
					{Path: entity.ListingFieldDailyViews, Value: 0},
					{Path: entity.ListingFieldLastDailyReset, Value: repository.ServerTimestamp},
				},
			})
		}

		if err := s.store.CommitBatch(ctx, writes); err != nil {
			logger.Error("Daily reset batch failed, aborting run",
				slog.Int("batch", report.Batches+1),
				slog.Int("updated", report.Updated),
				slog.Int("scanned", report.Scanned),
				slog.Any("error", err),
			)

			return report, errors.Wrapf(err, "commit batch %d", report.Batches+1)
		}

		report.Batches++
		report.Updated += len(chunk)
	}

	logger.Info("Daily reset completed",
		slog.Int("updated", report.Updated),
		slog.Int("batches", report.Batches),
	)

	return report, nil
}
