package impl

import (
	"context"
	"log/slog"

	"marketbridge/config"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/usecase"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
)

// listingUpdater implements the ListingUsecase interface.
type listingUpdater struct {
	store       repository.DocumentStore
	collections config.CollectionsConfig
	logger      *slog.Logger
}

// ListingUpdaterParams holds dependencies for the listing updater, injected by Fx.
type ListingUpdaterParams struct {
	fx.In

	Store  repository.DocumentStore
	Config *config.Config
	Logger *slog.Logger
}

// NewListingUpdater creates a new listing updater instance
func NewListingUpdater(params ListingUpdaterParams) usecase.ListingUsecase {
	return &listingUpdater{
		store:       params.Store,
		collections: params.Config.Collections,
		logger:      params.Logger,
	}
}

// HandleCreated stamps creation defaults on a new listing and counts it on its owner. The
// createdAtServer guard and the owner increment commit together, so a redelivered event
// finds the guard set and changes nothing.
func (u *listingUpdater) HandleCreated(ctx context.Context, event *entity.ChangeEvent) (result usecase.Result) {
	ctx, span := tracer().Start(ctx, "ListingCreated", eventAttributes(event))
	defer func() { endSpan(span, result) }()

	var (
		outcome usecase.Outcome
		reason  string
		ownerID string
	)

	err := u.store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
		// The function may run more than once under contention
		outcome, reason, ownerID = usecase.OutcomeApplied, "", ""

		listing, err := tx.Get(u.collections.Listings, event.Key)
		if errors.Is(err, repository.ErrDocumentNotFound) {
			outcome, reason = usecase.OutcomeSkipped, "listing not found"

			return nil
		}
		if err != nil {
			return err
		}

		if listing.Has(entity.ListingFieldCreatedAtServer) {
			outcome, reason = usecase.OutcomeDuplicate, "creation defaults already written"

			return nil
		}

		var owner *repository.Document
		if id, ok := listing.String(entity.ListingFieldOwnerID); ok && id != "" {
			owner, err = tx.Get(u.collections.Accounts, id)
			switch {
			case errors.Is(err, repository.ErrDocumentNotFound):
				owner = nil
			case err != nil:
				return err
			default:
				ownerID = id
			}
		}

		if err := tx.Update(u.collections.Listings, event.Key,
			repository.Update{Path: entity.ListingFieldCreatedAtServer, Value: repository.ServerTimestamp},
			repository.Update{Path: entity.ListingFieldListingID, Value: event.Key},
			repository.Update{Path: entity.ListingFieldVerified, Value: false},
			repository.Update{Path: entity.ListingFieldTrending, Value: false},
		); err != nil {
			return err
		}

		if owner == nil {
			return nil
		}

		return tx.Update(u.collections.Accounts, owner.Key,
			repository.Update{Path: entity.AccountFieldTotalListings, Value: repository.Increment{Delta: 1}},
			repository.Update{Path: entity.AccountFieldLastListingAt, Value: repository.ServerTimestamp},
		)
	})
	if err != nil {
		return failedResult(event, errors.Wrap(err, "apply listing creation defaults"))
	}

	span.SetAttributes(attribute.Bool("listing.owner_counted", ownerID != ""))
	if outcome == usecase.OutcomeApplied && ownerID == "" {
		deliverycontext.GetLoggerOrDefault(ctx, u.logger).Debug("Listing has no resolvable owner, increment skipped",
			slog.String("key", event.Key),
		)
	}

	return resultFor(event, outcome, reason)
}

// HandleUpdated records the price move when it exceeds PriceChangeThreshold. The decision
// depends only on the before and after snapshots, so replays write the same values.
func (u *listingUpdater) HandleUpdated(ctx context.Context, event *entity.ChangeEvent) (result usecase.Result) {
	ctx, span := tracer().Start(ctx, "ListingUpdated", eventAttributes(event))
	defer func() { endSpan(span, result) }()

	if event.Before == nil || event.After == nil {
		return resultFor(event, usecase.OutcomeSkipped, "event carries no before/after snapshots")
	}

	// Only the price matters here; other fields may have any shape
	before := snapshotPrice(event.Before)
	after := snapshotPrice(event.After)

	if before <= 0 {
		return resultFor(event, usecase.OutcomeSkipped, "no baseline price")
	}

	change, ok := entity.EvaluatePriceChange(before, after)
	if !ok {
		return resultFor(event, usecase.OutcomeSkipped, "price change within threshold")
	}

	span.SetAttributes(attribute.Float64("listing.price_change_percent", change.Percent))

	err := u.store.Update(ctx, u.collections.Listings, event.Key,
		repository.Update{Path: entity.ListingFieldLastPriceUpdate, Value: repository.ServerTimestamp},
		repository.Update{Path: entity.ListingFieldPriceChangePercent, Value: change.Percent},
	)
	if errors.Is(err, repository.ErrDocumentNotFound) {
		return resultFor(event, usecase.OutcomeSkipped, "listing not found")
	}
	if err != nil {
		return failedResult(event, errors.Wrap(err, "record price change"))
	}

	return resultFor(event, usecase.OutcomeApplied, "")
}

// snapshotPrice reads the price from a snapshot. Missing or non-numeric prices count as 0.
func snapshotPrice(data map[string]any) float64 {
	price, _ := (&repository.Document{Data: data}).Number(entity.ListingFieldPrice)

	return price
}
