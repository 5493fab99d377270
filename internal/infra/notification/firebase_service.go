package notification

import (
	"context"
	"log/slog"

	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/infra/firebaseapp"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
)

// messageSender abstracts the FCM client for testing.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// fcmSink pushes notification records to a per-account FCM topic. Client apps subscribe
// their device tokens to the topic of the signed-in account.
type fcmSink struct {
	client      messageSender
	topicPrefix string
	logger      *slog.Logger
}

// NewFCMSink creates a new FCM notification sink instance
func NewFCMSink(ctx context.Context, app *firebase.App, topicPrefix string, logger *slog.Logger) (service.NotificationSink, error) {
	if app == nil {
		return nil, errors.WithStack(firebaseapp.ErrNotConfigured)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &fcmSink{
		client:      client,
		topicPrefix: topicPrefix,
		logger:      logger,
	}, nil
}

// Deliver sends the record to the account's topic.
func (s *fcmSink) Deliver(ctx context.Context, record *entity.NotificationRecord) error {
	topic := s.topicPrefix + record.UserID
	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: record.Title,
			Body:  record.Message,
		},
		Data: map[string]string{
			"notificationId": record.ID,
			"type":           string(record.Type),
		},
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		return errors.Wrapf(err, "failed to send notification to topic %s", topic)
	}

	s.logger.Debug("Notification delivered",
		slog.String("notification_id", record.ID),
		slog.String("topic", topic),
		slog.String("message_id", messageID),
	)

	return nil
}
