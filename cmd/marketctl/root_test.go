package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"
	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/memory"
	mockService "marketbridge/internal/mocks/service"
	mockUsecase "marketbridge/internal/mocks/usecase"
	"marketbridge/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cliFixtures struct {
	statistics  *mockUsecase.MockStatisticsUsecase
	maintenance *mockUsecase.MockMaintenanceUsecase
	dispatcher  *mockUsecase.MockEventDispatcher
	publisher   *mockService.MockEventPublisher
	store       *memory.Store
	stopped     bool
}

func (f *cliFixtures) factory(context.Context) (*services, func(), error) {
	return &services{
		Statistics:  f.statistics,
		Maintenance: f.maintenance,
		Dispatcher:  f.dispatcher,
		Publisher:   f.publisher,
		Store:       f.store,
		Collections: config.CollectionsConfig{
			Listings: constants.DefaultListingsCollection,
			Accounts: constants.DefaultAccountsCollection,
		},
	}, func() { f.stopped = true }, nil
}

func createCLIFixtures(t *testing.T) *cliFixtures {
	return &cliFixtures{
		statistics:  mockUsecase.NewMockStatisticsUsecase(t),
		maintenance: mockUsecase.NewMockMaintenanceUsecase(t),
		dispatcher:  mockUsecase.NewMockEventDispatcher(t),
		publisher:   mockService.NewMockEventPublisher(t),
		store:       memory.New(),
	}
}

func run(f *cliFixtures, stdin string, args ...string) (string, error) {
	cmd := newRootCommand(f.factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func writeEventFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestStatsCommand(t *testing.T) {
	f := createCLIFixtures(t)
	f.statistics.EXPECT().ComputeMarketStatistics(mock.Anything).
		Return(&entity.MarketStatistics{TotalListings: 4, AveragePriceChange: "0.00%"}, nil).Once()

	out, err := run(f, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalListings": 4`)
	assert.True(t, f.stopped)
}

func TestResetCommand_PrintsPartialReportOnFailure(t *testing.T) {
	f := createCLIFixtures(t)
	f.maintenance.EXPECT().ResetDailyViews(mock.Anything).
		Return(&entity.ResetReport{Scanned: 900, Updated: 500, Batches: 1}, errors.New("batch 2 failed")).Once()

	out, err := run(f, "", "reset-daily-views")
	require.Error(t, err)
	assert.Contains(t, out, `"updated": 500`)
}

func TestDispatchCommand(t *testing.T) {
	f := createCLIFixtures(t)
	path := writeEventFile(t, `{"eventId":"e1","collection":"products","kind":"updated","key":"p1","before":{"price":100},"after":{"price":111}}`)

	f.dispatcher.EXPECT().Dispatch(mock.Anything, mock.MatchedBy(func(e *entity.ChangeEvent) bool {
		return e.EventID == "e1" && e.Kind == entity.EventKindUpdated
	})).Return(usecase.Result{Outcome: usecase.OutcomeApplied}).Once()

	out, err := run(f, "", "dispatch", "--file", path)
	require.NoError(t, err)

	var printed dispatchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &printed))
	assert.Equal(t, "applied", printed.Outcome)
	assert.Equal(t, "p1", printed.Key)
}

func TestDispatchCommand_FailedOutcomeExitsNonZero(t *testing.T) {
	f := createCLIFixtures(t)

	f.dispatcher.EXPECT().Dispatch(mock.Anything, mock.Anything).
		Return(usecase.Result{Outcome: usecase.OutcomeFailed, Err: errors.New("store unavailable"), Retryable: true}).Once()

	out, err := run(f, `{"collection":"users","kind":"created","key":"u1"}`, "dispatch", "--file", "-")
	require.Error(t, err)
	assert.Contains(t, out, "store unavailable")
}

func TestPublishCommand_AssignsEventID(t *testing.T) {
	f := createCLIFixtures(t)
	path := writeEventFile(t, `{"collection":"users","kind":"created","key":"u1"}`)

	f.publisher.EXPECT().PublishChangeEvent(mock.Anything, mock.MatchedBy(func(e *entity.ChangeEvent) bool {
		return e.EventID != "" && e.Key == "u1"
	})).Return(nil).Once()

	out, err := run(f, "", "publish", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "published"`)
}

func TestReadEvent_InvalidJSON(t *testing.T) {
	_, err := readEvent(strings.NewReader("{"), "-")
	assert.Error(t, err)

	_, err = readEvent(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDispatchCommand_RequiresFile(t *testing.T) {
	_, err := run(createCLIFixtures(t), "", "dispatch")
	assert.Error(t, err)
}

func TestGetCommand_Listing(t *testing.T) {
	f := createCLIFixtures(t)
	f.store.Put(constants.DefaultListingsCollection, "p1", map[string]any{
		"name":               "Okra",
		"price":              int64(30),
		"inStock":            true,
		"dailyViews":         int64(12),
		"priceChangePercent": 0.25,
		"lastPriceUpdate":    "2026-05-01T05:00:00Z",
	})

	out, err := run(f, "", "get", "listing", "p1")
	require.NoError(t, err)

	var listing entity.Listing
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, "p1", listing.Key)
	assert.InDelta(t, 30, listing.Price, 0)
	assert.Equal(t, int64(12), listing.DailyViews)
	require.NotNil(t, listing.PriceChangePercent)
	assert.InDelta(t, 0.25, *listing.PriceChangePercent, 0)
	require.NotNil(t, listing.LastPriceUpdate)
}

func TestGetCommand_Account(t *testing.T) {
	f := createCLIFixtures(t)
	f.store.Put(constants.DefaultAccountsCollection, "u1", map[string]any{
		"name":          "Meera",
		"role":          "farmer",
		"totalListings": int64(4),
		"stats":         map[string]any{"totalListings": int64(0), "rating": 0.0},
	})

	out, err := run(f, "", "get", "account", "u1")
	require.NoError(t, err)

	var account entity.Account
	require.NoError(t, json.Unmarshal([]byte(out), &account))
	assert.Equal(t, entity.RoleFarmer, account.Role)
	assert.Equal(t, int64(4), account.TotalListings)
	require.NotNil(t, account.Stats)
}

func TestGetCommand_Errors(t *testing.T) {
	f := createCLIFixtures(t)

	_, err := run(f, "", "get", "order", "o1")
	assert.Error(t, err)

	_, err = run(f, "", "get", "listing", "missing")
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}
