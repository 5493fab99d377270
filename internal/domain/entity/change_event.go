package entity

// EventKind is the type of change a notification reports.
type EventKind string

const (
	EventKindCreated EventKind = "created"
	EventKindUpdated EventKind = "updated"
)

// ChangeEvent is one entity-change notification from the document store's change stream.
// Delivery is at-least-once and unordered, so the same event may arrive more than once.
type ChangeEvent struct {
	EventID    string         `json:"eventId,omitempty"`
	RequestID  string         `json:"requestId,omitempty"`
	Collection string         `json:"collection" validate:"required"`
	Kind       EventKind      `json:"kind" validate:"required,oneof=created updated"`
	Key        string         `json:"key" validate:"required"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
}
