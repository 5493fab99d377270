package service

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// EventPublisher defines the interface for publishing change events to the worker's queue
type EventPublisher interface {
	// PublishChangeEvent publishes an entity-change event for async processing
	PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
