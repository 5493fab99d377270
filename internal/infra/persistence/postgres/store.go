package postgres

import (
	"context"
	"time"

	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/docmap"
	"marketbridge/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultMaxBatchSize = 500

// Store implements repository.DocumentStore on a single JSONB table. Row locks taken with
// SELECT ... FOR UPDATE give transactions the same per-document isolation Firestore has.
type Store struct {
	db           *gorm.DB
	now          func() time.Time
	maxBatchSize int
}

var _ repository.DocumentStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the commit-time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore wraps db and makes sure the documents table exists.
func NewStore(ctx context.Context, db *gorm.DB, maxBatchSize int, opts ...Option) (*Store, error) {
	if err := db.WithContext(ctx).AutoMigrate(&model.DocumentModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate documents table")
	}

	if maxBatchSize <= 0 {
		maxBatchSize = defaultMaxBatchSize
	}

	s := &Store{
		db:           db,
		now:          func() time.Time { return time.Now().UTC() },
		maxBatchSize: maxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Get implements repository.DocumentStore.
func (s *Store) Get(ctx context.Context, collection, key string) (*repository.Document, error) {
	doc, err := find(s.db.WithContext(ctx), collection, key, false)
	if err != nil {
		return nil, classify(err, "get "+collection+"/"+key)
	}

	return doc, nil
}

// Update implements repository.DocumentStore.
func (s *Store) Update(ctx context.Context, collection, key string, updates ...repository.Update) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return update(tx, collection, key, updates, s.now())
	})

	return classify(err, "update "+collection+"/"+key)
}

// RunTransaction implements repository.DocumentStore.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &transaction{db: tx, now: s.now()})
	})

	return classify(err, "transaction")
}

// Query implements repository.DocumentStore.
func (s *Store) Query(ctx context.Context, collection string, filters ...repository.Filter) ([]*repository.Document, error) {
	query := s.db.WithContext(ctx).Where("collection = ?", collection)
	for _, filter := range filters {
		query = query.Where(datatypes.JSONQuery("data").Equals(filter.Value, splitPath(filter.Path)...))
	}

	var rows []*model.DocumentModel
	if err := query.Order("doc_key").Find(&rows).Error; err != nil {
		return nil, classify(err, "query "+collection)
	}

	docs := make([]*repository.Document, 0, len(rows))
	for _, row := range rows {
		// JSON text comparison is loose; re-check with typed equality
		if !docmap.Matches(row.Data, filters) {
			continue
		}
		docs = append(docs, toDocument(row))
	}

	return docs, nil
}

// ListKeys implements repository.DocumentStore.
func (s *Store) ListKeys(ctx context.Context, collection string) ([]string, error) {
	keys := make([]string, 0)
	if err := s.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("collection = ?", collection).
		Order("doc_key").
		Pluck("doc_key", &keys).Error; err != nil {
		return nil, classify(err, "list "+collection)
	}

	return keys, nil
}

// CommitBatch implements repository.DocumentStore.
func (s *Store) CommitBatch(ctx context.Context, writes []repository.BatchWrite) error {
	if len(writes) > s.maxBatchSize {
		return errors.Wrapf(repository.ErrBatchTooLarge, "%d writes, max %d", len(writes), s.maxBatchSize)
	}
	if len(writes) == 0 {
		return nil
	}

	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, write := range writes {
			if err := update(tx, write.Collection, write.Key, write.Updates, now); err != nil {
				return err
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

func find(db *gorm.DB, collection, key string, lock bool) (*repository.Document, error) {
	query := db.Where("collection = ? AND doc_key = ?", collection, key)
	if lock {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var row model.DocumentModel
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(repository.ErrDocumentNotFound, "%s/%s", collection, key)
		}

		return nil, errors.WithStack(err)
	}

	return toDocument(&row), nil
}

func update(tx *gorm.DB, collection, key string, updates []repository.Update, now time.Time) error {
	doc, err := find(tx, collection, key, true)
	if err != nil {
		return err
	}

	if err := docmap.Apply(doc.Data, updates, now); err != nil {
		return err
	}

	return errors.WithStack(tx.Model(&model.DocumentModel{}).
		Where("collection = ? AND doc_key = ?", collection, key).
		Updates(map[string]any{
			"data":       datatypes.JSONMap(doc.Data),
			"updated_at": now,
		}).Error)
}

func toDocument(row *model.DocumentModel) *repository.Document {
	data := map[string]any(row.Data)
	if data == nil {
		data = map[string]any{}
	}

	// JSON columns decode numbers as json.Number
	docmap.Normalize(data)

	return &repository.Document{Key: row.Key, Data: data}
}
