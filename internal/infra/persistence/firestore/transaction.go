package firestore

import (
	"marketbridge/internal/domain/repository"

	gcfs "cloud.google.com/go/firestore"
)

type transaction struct {
	client *gcfs.Client
	tx     *gcfs.Transaction
}

var _ repository.Tx = (*transaction)(nil)

func (t *transaction) Get(collection, key string) (*repository.Document, error) {
	snap, err := t.tx.Get(t.client.Collection(collection).Doc(key))
	if err != nil {
		return nil, classify(err, "tx get "+collection+"/"+key)
	}

	return &repository.Document{Key: snap.Ref.ID, Data: snap.Data()}, nil
}

func (t *transaction) Create(collection, key string, data map[string]any) error {
	converted, _ := toValue(data).(map[string]any)
	if converted == nil {
		converted = map[string]any{}
	}

	return classify(t.tx.Create(t.client.Collection(collection).Doc(key), converted), "tx create "+collection+"/"+key)
}

func (t *transaction) Update(collection, key string, updates ...repository.Update) error {
	return classify(t.tx.Update(t.client.Collection(collection).Doc(key), toUpdates(updates)), "tx update "+collection+"/"+key)
}
