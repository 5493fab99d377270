package impl

import (
	"context"
	"log/slog"

	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/usecase"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "marketbridge/usecase"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func eventAttributes(event *entity.ChangeEvent) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("event.collection", event.Collection),
		attribute.String("event.kind", string(event.Kind)),
		attribute.String("event.key", event.Key),
		attribute.String("event.id", event.EventID),
	)
}

func resultFor(event *entity.ChangeEvent, outcome usecase.Outcome, reason string) usecase.Result {
	return usecase.Result{
		Collection: event.Collection,
		Kind:       event.Kind,
		Key:        event.Key,
		Outcome:    outcome,
		Reason:     reason,
	}
}

// failedResult builds a failure, marking it retryable when redelivery may help.
func failedResult(event *entity.ChangeEvent, err error) usecase.Result {
	result := resultFor(event, usecase.OutcomeFailed, err.Error())
	result.Err = err
	result.Retryable = isRetryable(err)

	return result
}

func isRetryable(err error) bool {
	return repository.IsTransient(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// endSpan copies the result onto the span before ending it.
func endSpan(span trace.Span, result usecase.Result) {
	span.SetAttributes(attribute.String("event.outcome", string(result.Outcome)))
	if result.Failed() {
		if result.Err != nil {
			span.RecordError(result.Err)
		}
		span.SetStatus(codes.Error, result.Reason)
	}
	span.End()
}

func logAttrs(event *entity.ChangeEvent) []any {
	return []any{
		slog.String("collection", event.Collection),
		slog.String("kind", string(event.Kind)),
		slog.String("key", event.Key),
		slog.String("event_id", event.EventID),
	}
}
