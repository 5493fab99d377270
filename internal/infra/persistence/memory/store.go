// Package memory is an in-process document store used for local development and tests.
// Transactions are serialized behind a single mutex, so concurrent updates never conflict.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/docmap"

	"github.com/pkg/errors"
)

const defaultMaxBatchSize = 500

// BatchHook runs before batch number n (starting at 0) is committed. A non-nil error
// rejects the batch without applying it.
type BatchHook func(n int, writes []repository.BatchWrite) error

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the commit-time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithMaxBatchSize sets the batch capacity reported by MaxBatchSize.
func WithMaxBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithBatchHook installs a hook consulted before each batch commit.
func WithBatchHook(hook BatchHook) Option {
	return func(s *Store) {
		s.batchHook = hook
	}
}

// Store keeps documents in nested maps keyed by collection and document key.
type Store struct {
	mu           sync.Mutex
	collections  map[string]map[string]map[string]any
	now          func() time.Time
	lastStamp    time.Time
	maxBatchSize int
	batchHook    BatchHook
	batches      int
}

var _ repository.DocumentStore = (*Store)(nil)

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		collections:  map[string]map[string]map[string]any{},
		now:          func() time.Time { return time.Now().UTC() },
		maxBatchSize: defaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Put seeds or replaces a document as-is. Sentinels in data are resolved.
func (s *Store) Put(collection, key string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection(collection)[key] = docmap.Materialize(data, s.stamp())
}

// Delete removes a document if present.
func (s *Store) Delete(collection, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collection(collection), key)
}

// Get implements repository.DocumentStore.
func (s *Store) Get(ctx context.Context, collection, key string) (*repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(collection, key)
}

// Update implements repository.DocumentStore.
func (s *Store) Update(ctx context.Context, collection, key string, updates ...repository.Update) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collection(collection)[key]
	if !ok {
		return errors.Wrapf(repository.ErrDocumentNotFound, "%s/%s", collection, key)
	}

	next := docmap.Clone(data)
	if err := docmap.Apply(next, updates, s.stamp()); err != nil {
		return err
	}
	s.collection(collection)[key] = next

	return nil
}

// RunTransaction implements repository.DocumentStore. Writes are buffered and applied
// only when fn returns nil.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.commit()
}

// Query implements repository.DocumentStore. Results are ordered by key.
func (s *Store) Query(ctx context.Context, collection string, filters ...repository.Filter) ([]*repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]*repository.Document, 0)
	for _, key := range s.keys(collection) {
		data := s.collection(collection)[key]
		if docmap.Matches(data, filters) {
			docs = append(docs, &repository.Document{Key: key, Data: docmap.Clone(data)})
		}
	}

	return docs, nil
}

// ListKeys implements repository.DocumentStore.
func (s *Store) ListKeys(ctx context.Context, collection string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.keys(collection), nil
}

// CommitBatch implements repository.DocumentStore. Either every write lands or none does.
func (s *Store) CommitBatch(ctx context.Context, writes []repository.BatchWrite) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if len(writes) > s.maxBatchSize {
		return errors.Wrapf(repository.ErrBatchTooLarge, "%d writes, max %d", len(writes), s.maxBatchSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.batches
	s.batches++
	if s.batchHook != nil {
		if err := s.batchHook(n, writes); err != nil {
			return err
		}
	}

	now := s.stamp()
	staged := make(map[string]map[string]any, len(writes))
	for _, write := range writes {
		id := write.Collection + "/" + write.Key
		data, ok := staged[id]
		if !ok {
			current, exists := s.collection(write.Collection)[write.Key]
			if !exists {
				return errors.Wrapf(repository.ErrDocumentNotFound, "%s", id)
			}
			data = docmap.Clone(current)
			staged[id] = data
		}
		if err := docmap.Apply(data, write.Updates, now); err != nil {
			return err
		}
	}

	for _, write := range writes {
		s.collection(write.Collection)[write.Key] = staged[write.Collection+"/"+write.Key]
	}

	return nil
}

// MaxBatchSize implements repository.DocumentStore.
func (s *Store) MaxBatchSize() int {
	return s.maxBatchSize
}

func (s *Store) get(collection, key string) (*repository.Document, error) {
	data, ok := s.collection(collection)[key]
	if !ok {
		return nil, errors.Wrapf(repository.ErrDocumentNotFound, "%s/%s", collection, key)
	}

	return &repository.Document{Key: key, Data: docmap.Clone(data)}, nil
}

func (s *Store) collection(name string) map[string]map[string]any {
	docs, ok := s.collections[name]
	if !ok {
		docs = map[string]map[string]any{}
		s.collections[name] = docs
	}

	return docs
}

func (s *Store) keys(collection string) []string {
	docs := s.collection(collection)
	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// stamp returns the commit time, never earlier than a previous one.
func (s *Store) stamp() time.Time {
	now := s.now()
	if now.Before(s.lastStamp) {
		now = s.lastStamp
	}
	s.lastStamp = now

	return now
}
