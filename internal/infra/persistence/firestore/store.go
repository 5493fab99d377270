// Package firestore implements the document store on Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"

	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/firebaseapp"

	gcfs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/iterator"
)

// maxWritesPerCommit is Firestore's per-commit write limit.
const maxWritesPerCommit = 500

// Store implements repository.DocumentStore on a Firestore client.
type Store struct {
	client       *gcfs.Client
	maxBatchSize int
}

var _ repository.DocumentStore = (*Store)(nil)

// NewClient opens a Firestore client from the Firebase app and closes it on shutdown.
func NewClient(ctx context.Context, lc fx.Lifecycle, app *firebase.App, logger *slog.Logger) (*gcfs.Client, error) {
	if app == nil {
		return nil, errors.WithStack(firebaseapp.ErrNotConfigured)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// New wraps client. maxBatchSize <= 0 or above the Firestore limit uses the limit.
func New(client *gcfs.Client, maxBatchSize int) *Store {
	if maxBatchSize <= 0 || maxBatchSize > maxWritesPerCommit {
		maxBatchSize = maxWritesPerCommit
	}

	return &Store{client: client, maxBatchSize: maxBatchSize}
}

// Get implements repository.DocumentStore.
func (s *Store) Get(ctx context.Context, collection, key string) (*repository.Document, error) {
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		return nil, classify(err, "get "+collection+"/"+key)
	}

	return &repository.Document{Key: snap.Ref.ID, Data: snap.Data()}, nil
}

// Update implements repository.DocumentStore.
func (s *Store) Update(ctx context.Context, collection, key string, updates ...repository.Update) error {
	_, err := s.client.Collection(collection).Doc(key).Update(ctx, toUpdates(updates))

	return classify(err, "update "+collection+"/"+key)
}

// RunTransaction implements repository.DocumentStore. Firestore retries fn on contention.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, t *gcfs.Transaction) error {
		return fn(ctx, &transaction{client: s.client, tx: t})
	})

	return classify(err, "transaction")
}

// Query implements repository.DocumentStore.
func (s *Store) Query(ctx context.Context, collection string, filters ...repository.Filter) ([]*repository.Document, error) {
	query := s.client.Collection(collection).Query
	for _, filter := range filters {
		query = query.Where(filter.Path, "==", filter.Value)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	docs := make([]*repository.Document, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(err, "query "+collection)
		}
		docs = append(docs, &repository.Document{Key: snap.Ref.ID, Data: snap.Data()})
	}

	return docs, nil
}

// ListKeys implements repository.DocumentStore. An empty projection returns document
// references without field data.
func (s *Store) ListKeys(ctx context.Context, collection string) ([]string, error) {
	iter := s.client.Collection(collection).Select().Documents(ctx)
	defer iter.Stop()

	keys := make([]string, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(err, "list "+collection)
		}
		keys = append(keys, snap.Ref.ID)
	}

	return keys, nil
}

// CommitBatch implements repository.DocumentStore. The writes are committed in a single
// transaction, which Firestore applies atomically.
func (s *Store) CommitBatch(ctx context.Context, writes []repository.BatchWrite) error {
	if len(writes) > s.maxBatchSize {
		return errors.Wrapf(repository.ErrBatchTooLarge, "%d writes, max %d", len(writes), s.maxBatchSize)
	}
	if len(writes) == 0 {
		return nil
	}

	err := s.client.RunTransaction(ctx, func(_ context.Context, t *gcfs.Transaction) error {
		for _, write := range writes {
			ref := s.client.Collection(write.Collection).Doc(write.Key)
			if err := t.Update(ref, toUpdates(write.Updates)); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	})

	return classify(err, "commit batch")
}

// MaxBatchSize implements repository.DocumentStore.
func (s *Store) MaxBatchSize() int {
	return s.maxBatchSize
}
