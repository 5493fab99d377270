// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"strings"
)

// Update sets one field, addressed by a dot-separated path, to Value.
// Value may be a plain value, ServerTimestamp or an Increment.
type Update struct {
	Path  string
	Value any
}

// Increment adds Delta to a numeric field as a single atomic transform.
// A missing field counts as zero.
type Increment struct {
	Delta int64
}

type serverTimestamp struct{}

// ServerTimestamp is replaced by the store's commit time when the write is applied.
//
//nolint:gochecknoglobals
var ServerTimestamp any = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)

	return ok
}

// Filter is an equality predicate on a document field.
type Filter struct {
	Path  string
	Value any
}

// BatchWrite is one document update inside an atomic batch.
type BatchWrite struct {
	Collection string
	Key        string
	Updates    []Update
}

// Document is a keyed, schema-flexible record.
type Document struct {
	Key  string
	Data map[string]any
}

// Lookup resolves a dot-separated path inside the document data.
func (d *Document) Lookup(path string) (any, bool) {
	if d == nil {
		return nil, false
	}

	var current any = d.Data
	for _, segment := range strings.Split(path, ".") {
		fields, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = fields[segment]
		if !ok {
			return nil, false
		}
	}

	return current, current != nil
}

// Has reports whether the path is set to a non-nil value.
func (d *Document) Has(path string) bool {
	_, ok := d.Lookup(path)

	return ok
}

// Number resolves path to a numeric value. Stores return int64 or float64 depending on
// how the value was written, so both are accepted.
func (d *Document) Number(path string) (float64, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// String resolves path to a string value.
func (d *Document) String(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)

	return s, ok
}

// Tx is the handle passed to a transaction function. All reads must happen before the first write.
type Tx interface {
	// Get reads a document. It returns ErrDocumentNotFound when the key does not exist.
	Get(collection, key string) (*Document, error)

	// Create writes a new document and fails the transaction with ErrAlreadyExists if it exists.
	Create(collection, key string, data map[string]any) error

	// Update applies field updates to an existing document.
	Update(collection, key string, updates ...Update) error
}

// DocumentStore is the capability the engine needs from the shared document store.
type DocumentStore interface {
	// Get performs a point read. It returns ErrDocumentNotFound when the key does not exist.
	Get(ctx context.Context, collection, key string) (*Document, error)

	// Update applies field updates to an existing document. It returns ErrDocumentNotFound
	// when the key does not exist.
	Update(ctx context.Context, collection, key string, updates ...Update) error

	// RunTransaction runs fn atomically. Conflicting transactions are retried by the adapter,
	// so fn must be free of side effects outside the Tx.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// Query returns every document of the collection matching all filters.
	Query(ctx context.Context, collection string, filters ...Filter) ([]*Document, error)

	// ListKeys returns the keys of every document in the collection.
	ListKeys(ctx context.Context, collection string) ([]string, error)

	// CommitBatch applies all writes atomically. len(writes) must not exceed MaxBatchSize.
	CommitBatch(ctx context.Context, writes []BatchWrite) error

	// MaxBatchSize is the largest number of writes a single batch may carry.
	MaxBatchSize() int
}
