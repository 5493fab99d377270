package usecase

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// StatisticsUsecase computes marketplace-wide aggregates on demand.
type StatisticsUsecase interface {
	ComputeMarketStatistics(ctx context.Context) (*entity.MarketStatistics, error)
}
