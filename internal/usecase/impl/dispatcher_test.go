package impl

import (
	"context"
	"testing"

	"marketbridge/internal/domain/entity"
	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/domain/repository"
	mockUsecase "marketbridge/internal/mocks/usecase"
	"marketbridge/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// dispatcherFixtures holds all test dependencies for dispatcher tests.
type dispatcherFixtures struct {
	dispatcher usecase.EventDispatcher
	listings   *mockUsecase.MockListingUsecase
	accounts   *mockUsecase.MockAccountUsecase
}

func createTestDispatcher(t *testing.T) dispatcherFixtures {
	listingsMock := mockUsecase.NewMockListingUsecase(t)
	accountsMock := mockUsecase.NewMockAccountUsecase(t)

	return dispatcherFixtures{
		dispatcher: NewDispatcher(DispatcherParams{
			Config:   newTestConfig(),
			Listings: listingsMock,
			Accounts: accountsMock,
			Logger:   newTestLogger(),
		}),
		listings: listingsMock,
		accounts: accountsMock,
	}
}

func TestDispatcher_RoutesByCollectionAndKind(t *testing.T) {
	fx := createTestDispatcher(t)
	ctx := context.Background()

	fx.listings.EXPECT().HandleCreated(mock.Anything, mock.Anything).Return(usecase.Result{Outcome: usecase.OutcomeApplied}).Once()
	fx.listings.EXPECT().HandleUpdated(mock.Anything, mock.Anything).Return(usecase.Result{Outcome: usecase.OutcomeSkipped}).Once()
	fx.accounts.EXPECT().HandleCreated(mock.Anything, mock.Anything).Return(usecase.Result{Outcome: usecase.OutcomeDuplicate}).Once()

	created := fx.dispatcher.Dispatch(ctx, createdEvent(listings, "p1"))
	updated := fx.dispatcher.Dispatch(ctx, updatedEvent("p1", 1, 2))
	account := fx.dispatcher.Dispatch(ctx, createdEvent(accounts, "u1"))

	assert.Equal(t, usecase.OutcomeApplied, created.Outcome)
	assert.Equal(t, "p1", created.Key)
	assert.Equal(t, listings, created.Collection)
	assert.Equal(t, usecase.OutcomeSkipped, updated.Outcome)
	assert.Equal(t, usecase.OutcomeDuplicate, account.Outcome)
}

func TestDispatcher_UnregisteredPairIsIgnored(t *testing.T) {
	fx := createTestDispatcher(t)
	ctx := context.Background()

	accountUpdate := &entity.ChangeEvent{Collection: accounts, Kind: entity.EventKindUpdated, Key: "u1"}
	orders := createdEvent("orders", "o1")

	for _, event := range []*entity.ChangeEvent{accountUpdate, orders} {
		result := fx.dispatcher.Dispatch(ctx, event)
		assert.Equal(t, usecase.OutcomeIgnored, result.Outcome)
		assert.NoError(t, result.Err)
	}
}

func TestDispatcher_MalformedEventFailsPermanently(t *testing.T) {
	fx := createTestDispatcher(t)
	ctx := context.Background()

	events := []*entity.ChangeEvent{
		nil,
		{Collection: listings, Kind: entity.EventKindCreated},
		{Collection: listings, Kind: "deleted", Key: "p1"},
		{Kind: entity.EventKindCreated, Key: "p1"},
	}

	for _, event := range events {
		result := fx.dispatcher.Dispatch(ctx, event)
		assert.True(t, result.Failed())
		assert.False(t, result.Retryable)
		assert.ErrorIs(t, result.Err, domainerrors.ErrMalformedEvent)
	}
}

func TestDispatcher_PanicBecomesFailure(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.listings.EXPECT().
		HandleCreated(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *entity.ChangeEvent) usecase.Result {
			panic("nil map")
		})

	result := fx.dispatcher.Dispatch(context.Background(), createdEvent(listings, "p1"))

	assert.True(t, result.Failed())
	assert.False(t, result.Retryable)
	assert.Contains(t, result.Reason, "nil map")
	assert.Error(t, result.Err)
}

func TestDispatcher_FailurePassesThrough(t *testing.T) {
	fx := createTestDispatcher(t)
	transient := repository.NewTransientError(errors.New("contention"))

	fx.accounts.EXPECT().
		HandleCreated(mock.Anything, mock.Anything).
		Return(failedResult(createdEvent(accounts, "u1"), transient))

	result := fx.dispatcher.Dispatch(context.Background(), createdEvent(accounts, "u1"))

	assert.True(t, result.Failed())
	assert.True(t, result.Retryable)
	assert.ErrorIs(t, result.Err, transient)
}

func TestDispatcher_FailureWithoutErrorGetsOne(t *testing.T) {
	fx := createTestDispatcher(t)

	fx.listings.EXPECT().
		HandleCreated(mock.Anything, mock.Anything).
		Return(usecase.Result{Outcome: usecase.OutcomeFailed, Reason: "bad state"})

	result := fx.dispatcher.Dispatch(context.Background(), createdEvent(listings, "p1"))

	assert.EqualError(t, result.Err, "bad state")
}
