package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/memory"
	"marketbridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listings = "products"
	accounts = "users"
)

// listingFixtures holds all test dependencies for listing updater tests.
type listingFixtures struct {
	updater usecase.ListingUsecase
	store   *memory.Store
}

func createTestListingUpdater(_ *testing.T) listingFixtures {
	store := memory.New()

	return listingFixtures{
		updater: NewListingUpdater(ListingUpdaterParams{
			Store:  store,
			Config: newTestConfig(),
			Logger: newTestLogger(),
		}),
		store: store,
	}
}

func createdEvent(collection, key string) *entity.ChangeEvent {
	return &entity.ChangeEvent{Collection: collection, Kind: entity.EventKindCreated, Key: key}
}

func updatedEvent(key string, before, after float64) *entity.ChangeEvent {
	return &entity.ChangeEvent{
		Collection: listings,
		Kind:       entity.EventKindUpdated,
		Key:        key,
		Before:     map[string]any{"price": before},
		After:      map[string]any{"price": after},
	}
}

func getDoc(t *testing.T, store repository.DocumentStore, collection, key string) *repository.Document {
	t.Helper()

	doc, err := store.Get(context.Background(), collection, key)
	require.NoError(t, err)

	return doc
}

func TestListingUpdater_HandleCreated_AppliesDefaultsAndCountsOwner(t *testing.T) {
	fx := createTestListingUpdater(t)
	ctx := context.Background()

	fx.store.Put(accounts, "farmer-1", map[string]any{"name": "Ravi", "role": "farmer"})
	fx.store.Put(listings, "p1", map[string]any{"name": "Tomatoes", "price": 40.0, "inStock": true, "ownerId": "farmer-1"})

	result := fx.updater.HandleCreated(ctx, createdEvent(listings, "p1"))
	require.Equal(t, usecase.OutcomeApplied, result.Outcome, result.Reason)

	listing := getDoc(t, fx.store, listings, "p1")
	assert.IsType(t, time.Time{}, listing.Data["createdAtServer"])
	assert.Equal(t, "p1", listing.Data["listingId"])
	assert.Equal(t, false, listing.Data["verified"])
	assert.Equal(t, false, listing.Data["trending"])

	owner := getDoc(t, fx.store, accounts, "farmer-1")
	assert.Equal(t, int64(1), owner.Data["totalListings"])
	assert.IsType(t, time.Time{}, owner.Data["lastListingAt"])
}

func TestListingUpdater_HandleCreated_RedeliveryDoesNotDoubleCount(t *testing.T) {
	fx := createTestListingUpdater(t)
	ctx := context.Background()

	fx.store.Put(accounts, "farmer-1", map[string]any{"role": "farmer"})
	fx.store.Put(listings, "p1", map[string]any{"price": 40.0, "ownerId": "farmer-1"})

	first := fx.updater.HandleCreated(ctx, createdEvent(listings, "p1"))
	firstStamp := getDoc(t, fx.store, listings, "p1").Data["createdAtServer"]
	second := fx.updater.HandleCreated(ctx, createdEvent(listings, "p1"))

	assert.Equal(t, usecase.OutcomeApplied, first.Outcome)
	assert.Equal(t, usecase.OutcomeDuplicate, second.Outcome)
	assert.Equal(t, int64(1), getDoc(t, fx.store, accounts, "farmer-1").Data["totalListings"])
	assert.Equal(t, firstStamp, getDoc(t, fx.store, listings, "p1").Data["createdAtServer"])
}

func TestListingUpdater_HandleCreated_OwnerMissingSkipsIncrement(t *testing.T) {
	fx := createTestListingUpdater(t)
	ctx := context.Background()

	fx.store.Put(listings, "p1", map[string]any{"price": 40.0, "ownerId": "ghost"})

	result := fx.updater.HandleCreated(ctx, createdEvent(listings, "p1"))

	assert.Equal(t, usecase.OutcomeApplied, result.Outcome)
	assert.NoError(t, result.Err)
	assert.True(t, getDoc(t, fx.store, listings, "p1").Has("createdAtServer"))

	_, err := fx.store.Get(ctx, accounts, "ghost")
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}

func TestListingUpdater_HandleCreated_NoOwner(t *testing.T) {
	fx := createTestListingUpdater(t)
	fx.store.Put(listings, "p1", map[string]any{"price": 10.0})

	result := fx.updater.HandleCreated(context.Background(), createdEvent(listings, "p1"))

	assert.Equal(t, usecase.OutcomeApplied, result.Outcome)
}

func TestListingUpdater_HandleCreated_ListingDeleted(t *testing.T) {
	fx := createTestListingUpdater(t)

	result := fx.updater.HandleCreated(context.Background(), createdEvent(listings, "gone"))

	assert.Equal(t, usecase.OutcomeSkipped, result.Outcome)
	assert.False(t, result.Failed())
}

func TestListingUpdater_HandleCreated_ConcurrentCreationsCountEachOnce(t *testing.T) {
	fx := createTestListingUpdater(t)
	ctx := context.Background()

	const n = 25
	fx.store.Put(accounts, "farmer-1", map[string]any{"role": "farmer"})
	keys := make([]string, n)
	for i := range n {
		keys[i] = "p" + string(rune('a'+i))
		fx.store.Put(listings, keys[i], map[string]any{"price": 1.0, "ownerId": "farmer-1"})
	}

	var wg sync.WaitGroup
	for _, key := range keys {
		// Each event is delivered twice
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result := fx.updater.HandleCreated(ctx, createdEvent(listings, key))
				assert.False(t, result.Failed())
			}()
		}
	}
	wg.Wait()

	assert.Equal(t, int64(n), getDoc(t, fx.store, accounts, "farmer-1").Data["totalListings"])
}

func TestListingUpdater_HandleUpdated(t *testing.T) {
	tests := []struct {
		name        string
		before      float64
		after       float64
		wantOutcome usecase.Outcome
		wantPercent any
	}{
		{name: "rise above threshold", before: 100, after: 111, wantOutcome: usecase.OutcomeApplied, wantPercent: 0.11},
		{name: "drop above threshold", before: 100, after: 80, wantOutcome: usecase.OutcomeApplied, wantPercent: -0.2},
		{name: "within threshold", before: 100, after: 105, wantOutcome: usecase.OutcomeSkipped},
		{name: "exactly ten percent", before: 100, after: 110, wantOutcome: usecase.OutcomeSkipped},
		{name: "no baseline", before: 0, after: 50, wantOutcome: usecase.OutcomeSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestListingUpdater(t)
			fx.store.Put(listings, "p1", map[string]any{"price": tt.after})

			result := fx.updater.HandleUpdated(context.Background(), updatedEvent("p1", tt.before, tt.after))
			assert.Equal(t, tt.wantOutcome, result.Outcome)

			listing := getDoc(t, fx.store, listings, "p1")
			if tt.wantPercent == nil {
				assert.False(t, listing.Has("priceChangePercent"))
				assert.False(t, listing.Has("lastPriceUpdate"))

				return
			}
			assert.InDelta(t, tt.wantPercent, listing.Data["priceChangePercent"], 1e-9)
			assert.IsType(t, time.Time{}, listing.Data["lastPriceUpdate"])
		})
	}
}

func TestListingUpdater_HandleUpdated_ReplayWritesSameValue(t *testing.T) {
	fx := createTestListingUpdater(t)
	ctx := context.Background()
	fx.store.Put(listings, "p1", map[string]any{"price": 111.0})

	first := fx.updater.HandleUpdated(ctx, updatedEvent("p1", 100, 111))
	percent := getDoc(t, fx.store, listings, "p1").Data["priceChangePercent"]
	second := fx.updater.HandleUpdated(ctx, updatedEvent("p1", 100, 111))

	assert.Equal(t, usecase.OutcomeApplied, first.Outcome)
	assert.Equal(t, usecase.OutcomeApplied, second.Outcome)
	assert.Equal(t, percent, getDoc(t, fx.store, listings, "p1").Data["priceChangePercent"])
}

func TestListingUpdater_HandleUpdated_ListingDeleted(t *testing.T) {
	fx := createTestListingUpdater(t)

	result := fx.updater.HandleUpdated(context.Background(), updatedEvent("gone", 100, 200))

	assert.Equal(t, usecase.OutcomeSkipped, result.Outcome)
}

func TestListingUpdater_HandleUpdated_MissingSnapshots(t *testing.T) {
	fx := createTestListingUpdater(t)
	event := &entity.ChangeEvent{Collection: listings, Kind: entity.EventKindUpdated, Key: "p1"}

	result := fx.updater.HandleUpdated(context.Background(), event)

	assert.Equal(t, usecase.OutcomeSkipped, result.Outcome)
}

func TestListingUpdater_HandleUpdated_NonNumericPriceHasNoBaseline(t *testing.T) {
	fx := createTestListingUpdater(t)
	fx.store.Put(listings, "p1", map[string]any{"price": 10.0})
	event := &entity.ChangeEvent{
		Collection: listings,
		Kind:       entity.EventKindUpdated,
		Key:        "p1",
		Before:     map[string]any{"price": "cheap"},
		After:      map[string]any{"price": 10.0},
	}

	result := fx.updater.HandleUpdated(context.Background(), event)

	assert.Equal(t, usecase.OutcomeSkipped, result.Outcome)
	assert.NoError(t, result.Err)
	assert.False(t, getDoc(t, fx.store, listings, "p1").Has("priceChangePercent"))
}

func TestListingUpdater_HandleUpdated_IgnoresUnrelatedFieldShapes(t *testing.T) {
	extras := map[string]map[string]any{
		"localized name":  map[string]any{"name": map[string]any{"en": "Tomatoes"}},
		"text dailyViews": map[string]any{"dailyViews": "n/a"},
		"list inStock":    map[string]any{"inStock": []any{"yes"}},
	}

	for name, extra := range extras {
		t.Run(name, func(t *testing.T) {
			fx := createTestListingUpdater(t)
			fx.store.Put(listings, "p1", map[string]any{"price": 111.0})

			before := map[string]any{"price": 100.0}
			after := map[string]any{"price": 111.0}
			for k, v := range extra {
				before[k] = v
				after[k] = v
			}
			event := &entity.ChangeEvent{
				Collection: listings,
				Kind:       entity.EventKindUpdated,
				Key:        "p1",
				Before:     before,
				After:      after,
			}

			result := fx.updater.HandleUpdated(context.Background(), event)

			require.Equal(t, usecase.OutcomeApplied, result.Outcome, "%v", result.Err)
			assert.InDelta(t, 0.11, getDoc(t, fx.store, listings, "p1").Data["priceChangePercent"], 1e-9)
		})
	}
}

func TestListingUpdater_HandleUpdated_IntegerPrices(t *testing.T) {
	fx := createTestListingUpdater(t)
	fx.store.Put(listings, "p1", map[string]any{"price": int64(80)})
	event := &entity.ChangeEvent{
		Collection: listings,
		Kind:       entity.EventKindUpdated,
		Key:        "p1",
		Before:     map[string]any{"price": int64(100)},
		After:      map[string]any{"price": int64(80)},
	}

	result := fx.updater.HandleUpdated(context.Background(), event)

	assert.Equal(t, usecase.OutcomeApplied, result.Outcome)
	assert.InDelta(t, -0.2, getDoc(t, fx.store, listings, "p1").Data["priceChangePercent"], 1e-9)
}
