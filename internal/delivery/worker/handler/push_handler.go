// Package handler contains the worker's push and job handlers.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"marketbridge/config"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const unknownLabel = "unknown"

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler turns Pub/Sub push deliveries into dispatched change events
type PushHandler struct {
	dispatcher     usecase.EventDispatcher
	recorder       service.EventRecorder
	handlerTimeout time.Duration
	logger         *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Dispatcher usecase.EventDispatcher
	Recorder   service.EventRecorder `optional:"true"`
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		dispatcher:     params.Dispatcher,
		recorder:       params.Recorder,
		handlerTimeout: params.Config.Worker.HandlerTimeout,
		logger:         params.Logger,
	}
}

// HandlePush acknowledges everything except retryable failures. Pub/Sub redelivers on any
// non-2xx answer, so permanent failures are logged, counted and answered with 200.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := decodeChangeEvent(&pushMsg)
	if err != nil {
		logger.Error("[Worker] Dropping undecodable change event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)
		h.recordUndecodable(&pushMsg)

		return c.NoContent(http.StatusOK)
	}

	// Priority: message attributes > event field > X-Request-Id > new
	requestID := h.extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if h.handlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.handlerTimeout)
		defer cancel()
	}

	result := h.dispatcher.Dispatch(ctx, event)
	if result.Failed() && result.Retryable {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}

// decodeChangeEvent unpacks the base64 payload. The Pub/Sub message ID stands in for a
// missing event ID so redeliveries share one identity.
func decodeChangeEvent(pushMsg *PubSubMessage) (*entity.ChangeEvent, error) {
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event entity.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "parse change event")
	}

	if event.EventID == "" {
		event.EventID = pushMsg.Message.MessageID
	}

	return &event, nil
}

func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *entity.ChangeEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *PushHandler) recordUndecodable(pushMsg *PubSubMessage) {
	if h.recorder == nil {
		return
	}

	collection, kind := unknownLabel, unknownLabel
	if v := pushMsg.Message.Attributes["collection"]; v != "" {
		collection = v
	}
	if v := pushMsg.Message.Attributes["kind"]; v != "" {
		kind = v
	}

	h.recorder.RecordEvent(collection, kind, string(usecase.OutcomeFailed), 0)
}
