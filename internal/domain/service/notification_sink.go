package service

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// NotificationSink receives notification records produced as a side effect of entity creation.
// Records reach the sink only after they have been persisted.
type NotificationSink interface {
	// Deliver forwards one record to the account it addresses.
	Deliver(ctx context.Context, record *entity.NotificationRecord) error
}
