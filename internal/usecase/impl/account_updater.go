package impl

import (
	"context"
	"log/slog"
	"time"

	"marketbridge/config"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountUpdater implements the AccountUsecase interface.
type accountUpdater struct {
	store       repository.DocumentStore
	sink        service.NotificationSink
	recorder    service.EventRecorder
	collections config.CollectionsConfig
	now         func() time.Time
	logger      *slog.Logger
}

// AccountUpdaterParams holds dependencies for the account updater, injected by Fx.
type AccountUpdaterParams struct {
	fx.In

	Store    repository.DocumentStore
	Sink     service.NotificationSink `optional:"true"`
	Recorder service.EventRecorder    `optional:"true"`
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAccountUpdater creates a new account updater instance
func NewAccountUpdater(params AccountUpdaterParams) usecase.AccountUsecase {
	return &accountUpdater{
		store:       params.Store,
		sink:        params.Sink,
		recorder:    params.Recorder,
		collections: params.Config.Collections,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      params.Logger,
	}
}

// HandleCreated initializes stats, lastActive and accountStatus and writes the welcome
// record in one transaction. The welcome record key is derived from the account key, so
// its existence marks the work as done.
func (u *accountUpdater) HandleCreated(ctx context.Context, event *entity.ChangeEvent) (result usecase.Result) {
	ctx, span := tracer().Start(ctx, "AccountCreated", eventAttributes(event))
	defer func() { endSpan(span, result) }()

	var (
		outcome usecase.Outcome
		reason  string
		record  *entity.NotificationRecord
	)

	err := u.store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
		outcome, reason, record = usecase.OutcomeApplied, "", nil

		account, err := tx.Get(u.collections.Accounts, event.Key)
		if errors.Is(err, repository.ErrDocumentNotFound) {
			outcome, reason = usecase.OutcomeSkipped, "account not found"

			return nil
		}
		if err != nil {
			return err
		}

		welcomeID := entity.WelcomeNotificationID(event.Key)
		_, err = tx.Get(u.collections.Notifications, welcomeID)
		welcomeExists := err == nil
		if err != nil && !errors.Is(err, repository.ErrDocumentNotFound) {
			return err
		}

		if account.Has(entity.AccountFieldStats) || welcomeExists {
			outcome, reason = usecase.OutcomeDuplicate, "account already initialized"

			return nil
		}

		name, _ := account.String(entity.AccountFieldName)
		welcome := entity.NewWelcomeNotification(event.Key, name)

		if err := tx.Update(u.collections.Accounts, event.Key,
			repository.Update{Path: entity.AccountFieldStats, Value: entity.AccountStats{}.Fields()},
			repository.Update{Path: entity.AccountFieldLastActive, Value: repository.ServerTimestamp},
			repository.Update{Path: entity.AccountFieldAccountStatus, Value: string(entity.AccountStatusActive)},
		); err != nil {
			return err
		}

		if err := tx.Create(u.collections.Notifications, welcome.ID, notificationFields(welcome)); err != nil {
			return err
		}
		record = welcome

		return nil
	})
	if err != nil {
		return failedResult(event, errors.Wrap(err, "initialize account"))
	}

	if record != nil {
		u.deliver(ctx, record)
	}

	return resultFor(event, outcome, reason)
}

// deliver hands a committed record to the sink. The record is already persisted, so a
// failed push is reported and not retried.
func (u *accountUpdater) deliver(ctx context.Context, record *entity.NotificationRecord) {
	if u.sink == nil {
		return
	}

	createdAt := u.now()
	record.CreatedAt = &createdAt

	err := u.sink.Deliver(ctx, record)
	if u.recorder != nil {
		u.recorder.RecordNotificationDelivery(err)
	}
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, u.logger).Warn("Failed to deliver welcome notification",
			slog.String("notification_id", record.ID),
			slog.String("user_id", record.UserID),
			slog.Any("error", err),
		)
	}
}

func notificationFields(record *entity.NotificationRecord) map[string]any {
	return map[string]any{
		entity.NotificationFieldUserID:    record.UserID,
		entity.NotificationFieldTitle:     record.Title,
		entity.NotificationFieldMessage:   record.Message,
		entity.NotificationFieldType:      string(record.Type),
		entity.NotificationFieldRead:      record.Read,
		entity.NotificationFieldCreatedAt: repository.ServerTimestamp,
	}
}
