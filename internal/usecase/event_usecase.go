package usecase

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// Outcome classifies how a change event was handled.
type Outcome string

const (
	// OutcomeApplied means derived state was written.
	OutcomeApplied Outcome = "applied"
	// OutcomeDuplicate means the work had already been done by an earlier delivery.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeSkipped means nothing needed to change, or the entity no longer exists.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the handler returned an error or panicked.
	OutcomeFailed Outcome = "failed"
	// OutcomeIgnored means no handler is registered for the event.
	OutcomeIgnored Outcome = "ignored"
)

// Result is the typed outcome of handling one change event.
type Result struct {
	Collection string
	Kind       entity.EventKind
	Key        string
	Outcome    Outcome
	Reason     string
	Err        error
	// Retryable is set on failures that may succeed on redelivery.
	Retryable bool
}

// Failed reports whether the event ended in failure.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// EventHandler handles one routed change event.
type EventHandler func(ctx context.Context, event *entity.ChangeEvent) Result

// EventDispatcher routes change events to the derived-state handlers.
type EventDispatcher interface {
	// Dispatch validates and routes the event. It never panics and never reports a
	// handler failure as success.
	Dispatch(ctx context.Context, event *entity.ChangeEvent) Result
}

// ListingUsecase maintains derived fields on listings and their owners.
type ListingUsecase interface {
	// HandleCreated writes creation defaults once and counts the listing on its owner.
	HandleCreated(ctx context.Context, event *entity.ChangeEvent) Result

	// HandleUpdated records qualifying price moves.
	HandleUpdated(ctx context.Context, event *entity.ChangeEvent) Result
}

// AccountUsecase maintains derived fields on accounts.
type AccountUsecase interface {
	// HandleCreated initializes account state and the welcome notification exactly once.
	HandleCreated(ctx context.Context, event *entity.ChangeEvent) Result
}
