package memory

import (
	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/docmap"

	"github.com/pkg/errors"
)

var errReadAfterWrite = errors.New("transaction reads must happen before writes")

type pendingWrite struct {
	collection string
	key        string
	create     map[string]any
	updates    []repository.Update
}

// transaction runs while the store mutex is held.
type transaction struct {
	store   *Store
	pending []pendingWrite
}

var _ repository.Tx = (*transaction)(nil)

func (t *transaction) Get(collection, key string) (*repository.Document, error) {
	if len(t.pending) > 0 {
		return nil, errors.WithStack(errReadAfterWrite)
	}

	return t.store.get(collection, key)
}

func (t *transaction) Create(collection, key string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	t.pending = append(t.pending, pendingWrite{collection: collection, key: key, create: data})

	return nil
}

func (t *transaction) Update(collection, key string, updates ...repository.Update) error {
	t.pending = append(t.pending, pendingWrite{collection: collection, key: key, updates: updates})

	return nil
}

func (t *transaction) commit() error {
	now := t.store.stamp()
	staged := map[string]map[string]any{}
	order := make([]pendingWrite, 0, len(t.pending))

	for _, write := range t.pending {
		id := write.collection + "/" + write.key
		current, inStage := staged[id]
		if !inStage {
			if existing, ok := t.store.collection(write.collection)[write.key]; ok {
				current = docmap.Clone(existing)
			}
		}

		if write.create != nil {
			if current != nil {
				return errors.Wrapf(repository.ErrAlreadyExists, "%s", id)
			}
			staged[id] = docmap.Materialize(write.create, now)
			order = append(order, write)

			continue
		}

		if current == nil {
			return errors.Wrapf(repository.ErrDocumentNotFound, "%s", id)
		}
		if err := docmap.Apply(current, write.updates, now); err != nil {
			return err
		}
		staged[id] = current
		order = append(order, write)
	}

	for _, write := range order {
		t.store.collection(write.collection)[write.key] = staged[write.collection+"/"+write.key]
	}

	return nil
}
