package usecase

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// MaintenanceUsecase runs bulk maintenance over the whole listing population.
type MaintenanceUsecase interface {
	// ResetDailyViews zeroes dailyViews on every listing in atomic batches. The first
	// failing batch aborts the run; earlier batches stay committed.
	ResetDailyViews(ctx context.Context) (*entity.ResetReport, error)
}
