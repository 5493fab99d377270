package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaintenanceService(store repository.DocumentStore) *maintenanceService {
	return NewMaintenanceService(MaintenanceServiceParams{
		Store:  store,
		Config: newTestConfig(),
		Logger: newTestLogger(),
	}).(*maintenanceService)
}

func seedListings(store *memory.Store, n int) []string {
	keys := make([]string, n)
	for i := range n {
		keys[i] = fmt.Sprintf("p%02d", i)
		store.Put(listings, keys[i], map[string]any{"dailyViews": 40 + i})
	}

	return keys
}

func TestMaintenanceService_ResetDailyViews_ChunksByBatchSize(t *testing.T) {
	store := memory.New(memory.WithMaxBatchSize(2))
	keys := seedListings(store, 5)

	report, err := newMaintenanceService(store).ResetDailyViews(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, report.Scanned)
	assert.Equal(t, 5, report.Updated)
	assert.Equal(t, 3, report.Batches)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	for _, key := range keys {
		doc := getDoc(t, store, listings, key)
		assert.Equal(t, 0, doc.Data["dailyViews"])
		assert.IsType(t, time.Time{}, doc.Data["lastDailyReset"])
	}
}

func TestMaintenanceService_ResetDailyViews_TwiceIsStable(t *testing.T) {
	clock := time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time {
		clock = clock.Add(time.Second)

		return clock
	}))
	seedListings(store, 3)
	svc := newMaintenanceService(store)
	ctx := context.Background()

	_, err := svc.ResetDailyViews(ctx)
	require.NoError(t, err)
	first := getDoc(t, store, listings, "p01").Data["lastDailyReset"].(time.Time)

	_, err = svc.ResetDailyViews(ctx)
	require.NoError(t, err)
	second := getDoc(t, store, listings, "p01")

	assert.Equal(t, 0, second.Data["dailyViews"])
	assert.False(t, second.Data["lastDailyReset"].(time.Time).Before(first))
}

func TestMaintenanceService_ResetDailyViews_AbortsOnFirstFailedBatch(t *testing.T) {
	unavailable := errors.New("unavailable")
	store := memory.New(
		memory.WithMaxBatchSize(2),
		memory.WithBatchHook(func(n int, _ []repository.BatchWrite) error {
			if n == 1 {
				return unavailable
			}

			return nil
		}),
	)
	seedListings(store, 5)

	report, err := newMaintenanceService(store).ResetDailyViews(context.Background())

	require.ErrorIs(t, err, unavailable)
	assert.Equal(t, 1, report.Batches)
	assert.Equal(t, 2, report.Updated)

	assert.Equal(t, 0, getDoc(t, store, listings, "p00").Data["dailyViews"])
	assert.Equal(t, 0, getDoc(t, store, listings, "p01").Data["dailyViews"])
	assert.Equal(t, 42, getDoc(t, store, listings, "p02").Data["dailyViews"])
	assert.Equal(t, 44, getDoc(t, store, listings, "p04").Data["dailyViews"])
}

func TestMaintenanceService_ResetDailyViews_Empty(t *testing.T) {
	report, err := newMaintenanceService(memory.New()).ResetDailyViews(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.Scanned)
	assert.Zero(t, report.Batches)
}
