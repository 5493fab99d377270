// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketbridge/config"
	deliverycontext "marketbridge/internal/delivery/context"
	"marketbridge/internal/domain/entity"
	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type route struct {
	collection string
	kind       entity.EventKind
}

// dispatcher implements the EventDispatcher interface.
type dispatcher struct {
	routes   map[route]usecase.EventHandler
	validate *validator.Validate
	recorder service.EventRecorder
	logger   *slog.Logger
}

// DispatcherParams holds dependencies for the dispatcher, injected by Fx.
type DispatcherParams struct {
	fx.In

	Config   *config.Config
	Listings usecase.ListingUsecase
	Accounts usecase.AccountUsecase
	Recorder service.EventRecorder `optional:"true"`
	Logger   *slog.Logger
}

// NewDispatcher registers the derived-state handlers for the configured collections.
func NewDispatcher(params DispatcherParams) usecase.EventDispatcher {
	collections := params.Config.Collections

	return &dispatcher{
		routes: map[route]usecase.EventHandler{
			{collections.Listings, entity.EventKindCreated}: params.Listings.HandleCreated,
			{collections.Listings, entity.EventKindUpdated}: params.Listings.HandleUpdated,
			{collections.Accounts, entity.EventKindCreated}: params.Accounts.HandleCreated,
		},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		recorder: params.Recorder,
		logger:   params.Logger,
	}
}

// Dispatch validates the event and routes it to its handler.
func (d *dispatcher) Dispatch(ctx context.Context, event *entity.ChangeEvent) (result usecase.Result) {
	if event == nil {
		return usecase.Result{
			Outcome: usecase.OutcomeFailed,
			Reason:  "nil event",
			Err:     domainerrors.ErrMalformedEvent.WithDetails("nil event"),
		}
	}

	start := time.Now()
	ctx, span := tracer().Start(ctx, "Dispatch", eventAttributes(event))
	logger := deliverycontext.GetLoggerOrDefault(ctx, d.logger).With(logAttrs(event)...)
	ctx = deliverycontext.WithLogger(ctx, logger)

	defer func() {
		d.report(ctx, logger, result, time.Since(start))
		endSpan(span, result)
	}()

	if err := d.validate.Struct(event); err != nil {
		malformed := domainerrors.ErrMalformedEvent.WithDetails(err.Error())
		result = resultFor(event, usecase.OutcomeFailed, malformed.Error())
		result.Err = malformed

		return result
	}

	handler, ok := d.routes[route{event.Collection, event.Kind}]
	if !ok {
		return resultFor(event, usecase.OutcomeIgnored, "no handler registered")
	}

	return d.invoke(ctx, handler, event)
}

// invoke runs handler behind a recover boundary.
func (d *dispatcher) invoke(ctx context.Context, handler usecase.EventHandler, event *entity.ChangeEvent) (result usecase.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = resultFor(event, usecase.OutcomeFailed, fmt.Sprintf("handler panic: %v", r))
			result.Err = errors.Errorf("handler panic: %v", r)
		}
	}()

	result = handler(ctx, event)
	result.Collection, result.Kind, result.Key = event.Collection, event.Kind, event.Key
	if result.Failed() && result.Err == nil {
		result.Err = errors.New(result.Reason)
	}

	return result
}

func (d *dispatcher) report(ctx context.Context, logger *slog.Logger, result usecase.Result, elapsed time.Duration) {
	if d.recorder != nil {
		d.recorder.RecordEvent(result.Collection, string(result.Kind), string(result.Outcome), elapsed)
	}

	attrs := []slog.Attr{
		slog.String("outcome", string(result.Outcome)),
		slog.Duration("elapsed", elapsed),
	}
	if result.Reason != "" {
		attrs = append(attrs, slog.String("reason", result.Reason))
	}

	switch result.Outcome {
	case usecase.OutcomeFailed:
		attrs = append(attrs, slog.Bool("retryable", result.Retryable), slog.Any("error", result.Err))
		logger.LogAttrs(ctx, slog.LevelError, "Change event failed", attrs...)
	case usecase.OutcomeApplied:
		logger.LogAttrs(ctx, slog.LevelInfo, "Change event applied", attrs...)
	default:
		logger.LogAttrs(ctx, slog.LevelDebug, "Change event handled", attrs...)
	}
}
