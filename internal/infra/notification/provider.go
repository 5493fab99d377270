// Package notification delivers persisted notification records to devices.
package notification

import (
	"context"
	"log/slog"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"
	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopSink is used when no push transport is configured. Records stay readable in-app.
type noopSink struct {
	logger *slog.Logger
}

func (s *noopSink) Deliver(_ context.Context, record *entity.NotificationRecord) error {
	s.logger.Debug("[NoopSink] Push delivery disabled, skipping",
		slog.String("notification_id", record.ID),
	)

	return nil
}

// SinkParams holds dependencies for NotificationSink, injected by Fx
type SinkParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewNotificationSink creates a NotificationSink based on configuration
func NewNotificationSink(params SinkParams) (service.NotificationSink, error) {
	cfg := params.Config.NotificationSink
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Notification sink not configured, using no-op sink")

		return &noopSink{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.SinkProviderFCM:
		logger.Info("Using FCM topic notification sink", slog.String("topic_prefix", cfg.TopicPrefix))

		return NewFCMSink(params.Ctx, params.App, cfg.TopicPrefix, logger)

	default:
		return nil, errors.Errorf("unknown notification sink provider: %s", cfg.Provider)
	}
}

// Module provides the notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotificationSink),
)
