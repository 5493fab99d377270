package firestore

import (
	"testing"

	"marketbridge/internal/domain/repository"

	gcfs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToUpdates(t *testing.T) {
	updates := toUpdates([]repository.Update{
		{Path: "totalListings", Value: repository.Increment{Delta: 1}},
		{Path: "lastListingAt", Value: repository.ServerTimestamp},
		{Path: "stats", Value: map[string]any{"rating": 0}},
	})

	assert.Len(t, updates, 3)
	assert.Equal(t, "totalListings", updates[0].Path)
	assert.Equal(t, gcfs.Increment(int64(1)), updates[0].Value)
	assert.Equal(t, gcfs.ServerTimestamp, updates[1].Value)
	assert.Equal(t, map[string]any{"rating": 0}, updates[2].Value)
}

func TestToValue_NestedServerTimestamp(t *testing.T) {
	converted := toValue(map[string]any{"createdAt": repository.ServerTimestamp, "read": false})

	assert.Equal(t, map[string]any{"createdAt": gcfs.ServerTimestamp, "read": false}, converted)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil, "op"))

	err := classify(status.Error(codes.NotFound, "no doc"), "get")
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)

	err = classify(status.Error(codes.AlreadyExists, "dup"), "create")
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	for _, code := range []codes.Code{codes.Aborted, codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted} {
		assert.True(t, repository.IsTransient(classify(status.Error(code, "busy"), "tx")), code.String())
	}

	err = classify(errors.New("bad field path"), "update")
	assert.False(t, repository.IsTransient(err))
	assert.NotErrorIs(t, err, repository.ErrDocumentNotFound)
}
