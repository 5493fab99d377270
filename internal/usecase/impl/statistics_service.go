package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketbridge/config"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/entity"
	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/usecase"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// statisticsTimestampLayout is RFC 3339 in UTC with millisecond precision.
const statisticsTimestampLayout = "2006-01-02T15:04:05.000Z"

// statisticsService implements the StatisticsUsecase interface.
type statisticsService struct {
	store       repository.DocumentStore
	collections config.CollectionsConfig
	now         func() time.Time
	logger      *slog.Logger
}

// StatisticsServiceParams holds dependencies for the statistics service, injected by Fx.
type StatisticsServiceParams struct {
	fx.In

	Store  repository.DocumentStore
	Config *config.Config
	Logger *slog.Logger
}

// NewStatisticsService creates a new statistics service instance
func NewStatisticsService(params StatisticsServiceParams) usecase.StatisticsUsecase {
	return &statisticsService{
		store:       params.Store,
		collections: params.Config.Collections,
		now:         time.Now,
		logger:      params.Logger,
	}
}

// ComputeMarketStatistics scans in-stock listings, farmers and buyers concurrently. Any
// failed scan fails the whole call.
func (s *statisticsService) ComputeMarketStatistics(ctx context.Context) (*entity.MarketStatistics, error) {
	ctx, span := tracer().Start(ctx, "ComputeMarketStatistics")
	defer span.End()

	var listings, farmers, buyers []*repository.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = s.store.Query(gctx, s.collections.Listings,
			repository.Filter{Path: entity.ListingFieldInStock, Value: true})

		return err
	})
	g.Go(func() error {
		var err error
		farmers, err = s.store.Query(gctx, s.collections.Accounts,
			repository.Filter{Path: entity.AccountFieldRole, Value: entity.RoleFarmer.String()})

		return err
	})
	g.Go(func() error {
		var err error
		buyers, err = s.store.Query(gctx, s.collections.Accounts,
			repository.Filter{Path: entity.AccountFieldRole, Value: entity.RoleBuyer.String()})

		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Error("Failed to compute market statistics",
			slog.Any("error", err),
		)

		return nil, domainerrors.NewStoreExecuteError(err, "failed to compute market statistics")
	}

	stats := &entity.MarketStatistics{
		TotalListings:      len(listings),
		TotalFarmers:       len(farmers),
		TotalBuyers:        len(buyers),
		AveragePriceChange: formatPercent(averagePriceChange(listings)),
		Timestamp:          s.now().UTC().Format(statisticsTimestampLayout),
	}

	span.SetAttributes(
		attribute.Int("stats.total_listings", stats.TotalListings),
		attribute.Int("stats.total_farmers", stats.TotalFarmers),
		attribute.Int("stats.total_buyers", stats.TotalBuyers),
	)

	return stats, nil
}

// averagePriceChange is the mean priceChangePercent, as a fraction, over the listings that
// carry a numeric value. It is 0 when none do.
func averagePriceChange(listings []*repository.Document) float64 {
	var (
		sum   float64
		count int
	)
	for _, listing := range listings {
		if v, ok := listing.Number(entity.ListingFieldPriceChangePercent); ok {
			sum += v
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// formatPercent renders a fraction as a percentage with two decimals, e.g. -0.05 as "-5.00%".
func formatPercent(fraction float64) string {
	formatted := fmt.Sprintf("%.2f%%", fraction*100)
	if formatted == "-0.00%" {
		return "0.00%"
	}

	return formatted
}
