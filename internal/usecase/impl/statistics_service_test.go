package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingQueryStore fails every query on one collection.
type failingQueryStore struct {
	repository.DocumentStore
	collection string
	err        error
}

func (s *failingQueryStore) Query(ctx context.Context, collection string, filters ...repository.Filter) ([]*repository.Document, error) {
	if collection == s.collection {
		return nil, s.err
	}

	return s.DocumentStore.Query(ctx, collection, filters...)
}

func newStatisticsService(store repository.DocumentStore, now time.Time) *statisticsService {
	svc := NewStatisticsService(StatisticsServiceParams{
		Store:  store,
		Config: newTestConfig(),
		Logger: newTestLogger(),
	}).(*statisticsService)
	svc.now = func() time.Time { return now }

	return svc
}

func TestStatisticsService_ComputeMarketStatistics(t *testing.T) {
	store := memory.New()
	store.Put(listings, "p1", map[string]any{"inStock": true, "priceChangePercent": 0.1})
	store.Put(listings, "p2", map[string]any{"inStock": true, "priceChangePercent": -0.2})
	store.Put(listings, "p3", map[string]any{"inStock": true})
	store.Put(listings, "p4", map[string]any{"inStock": false, "priceChangePercent": 5.0})
	store.Put(listings, "p5", map[string]any{"inStock": true, "priceChangePercent": "n/a"})
	store.Put(accounts, "f1", map[string]any{"role": "farmer"})
	store.Put(accounts, "f2", map[string]any{"role": "farmer"})
	store.Put(accounts, "b1", map[string]any{"role": "buyer"})
	store.Put(accounts, "x1", map[string]any{"role": "admin"})

	now := time.Date(2026, 5, 1, 10, 30, 0, 123456789, time.FixedZone("IST", 19800))
	stats, err := newStatisticsService(store, now).ComputeMarketStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalListings)
	assert.Equal(t, 2, stats.TotalFarmers)
	assert.Equal(t, 1, stats.TotalBuyers)
	assert.Equal(t, "-5.00%", stats.AveragePriceChange)
	assert.Equal(t, "2026-05-01T05:00:00.123Z", stats.Timestamp)
}

func TestStatisticsService_ComputeMarketStatistics_Empty(t *testing.T) {
	stats, err := newStatisticsService(memory.New(), time.Now()).ComputeMarketStatistics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalListings)
	assert.Equal(t, "0.00%", stats.AveragePriceChange)
}

func TestStatisticsService_ComputeMarketStatistics_ScanFailure(t *testing.T) {
	store := &failingQueryStore{DocumentStore: memory.New(), collection: accounts, err: errors.New("unavailable")}

	stats, err := newStatisticsService(store, time.Now()).ComputeMarketStatistics(context.Background())

	assert.Nil(t, stats)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL", appErr.ErrorCode())
}

func TestFormatPercent(t *testing.T) {
	tests := map[float64]string{
		0:        "0.00%",
		-0.05:    "-5.00%",
		0.123456: "12.35%",
		-0.00001: "0.00%",
		1:        "100.00%",
	}

	for fraction, want := range tests {
		assert.Equal(t, want, formatPercent(fraction), fraction)
	}
}
