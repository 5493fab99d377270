// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"strings"
	"time"

	"marketbridge/internal/domain/repository"
	"marketbridge/internal/infra/persistence/docmap"
	"marketbridge/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// transaction binds repository.Tx to one GORM transaction. Reads lock the row so
// concurrent transactions touching the same document run one after another.
type transaction struct {
	db  *gorm.DB
	now time.Time
}

var _ repository.Tx = (*transaction)(nil)

func (t *transaction) Get(collection, key string) (*repository.Document, error) {
	return find(t.db, collection, key, true)
}

func (t *transaction) Create(collection, key string, data map[string]any) error {
	row := &model.DocumentModel{
		Collection: collection,
		Key:        key,
		Data:       datatypes.JSONMap(docmap.Materialize(data, t.now)),
	}

	if err := t.db.Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrapf(repository.ErrAlreadyExists, "%s/%s", collection, key)
		}

		return errors.WithStack(err)
	}

	return nil
}

func (t *transaction) Update(collection, key string, updates ...repository.Update) error {
	return update(t.db, collection, key, updates, t.now)
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}
