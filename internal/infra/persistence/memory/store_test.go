package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketbridge/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Put("products", "p1", map[string]any{"price": 100.0})

	doc, err := store.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", doc.Key)
	assert.Equal(t, 100.0, doc.Data["price"])

	require.NoError(t, store.Update(ctx, "products", "p1", repository.Update{Path: "dailyViews", Value: 0}))
	doc, err = store.Get(ctx, "products", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Data["dailyViews"])

	_, err = store.Get(ctx, "products", "missing")
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)

	err = store.Update(ctx, "products", "missing", repository.Update{Path: "price", Value: 1})
	assert.ErrorIs(t, err, repository.ErrDocumentNotFound)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Put("users", "u1", map[string]any{"stats": map[string]any{"rating": 0}})

	doc, err := store.Get(ctx, "users", "u1")
	require.NoError(t, err)
	doc.Data["stats"].(map[string]any)["rating"] = 5

	doc, err = store.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Data["stats"].(map[string]any)["rating"])
}

func TestStore_RunTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits buffered writes", func(t *testing.T) {
		store := New()
		store.Put("users", "u1", map[string]any{"name": "Asha"})

		err := store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
			if _, err := tx.Get("users", "u1"); err != nil {
				return err
			}
			if err := tx.Update("users", "u1", repository.Update{Path: "accountStatus", Value: "active"}); err != nil {
				return err
			}

			return tx.Create("notifications", "welcome_u1", map[string]any{"userId": "u1", "createdAt": repository.ServerTimestamp})
		})
		require.NoError(t, err)

		user, err := store.Get(ctx, "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, "active", user.Data["accountStatus"])

		note, err := store.Get(ctx, "notifications", "welcome_u1")
		require.NoError(t, err)
		assert.IsType(t, time.Time{}, note.Data["createdAt"])
	})

	t.Run("rolls back on error", func(t *testing.T) {
		store := New()
		store.Put("users", "u1", map[string]any{"name": "Asha"})
		boom := errors.New("boom")

		err := store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
			_ = tx.Update("users", "u1", repository.Update{Path: "accountStatus", Value: "active"})

			return boom
		})
		assert.ErrorIs(t, err, boom)

		user, err := store.Get(ctx, "users", "u1")
		require.NoError(t, err)
		assert.NotContains(t, user.Data, "accountStatus")
	})

	t.Run("create on existing document fails whole transaction", func(t *testing.T) {
		store := New()
		store.Put("users", "u1", map[string]any{})
		store.Put("notifications", "welcome_u1", map[string]any{})

		err := store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
			_ = tx.Update("users", "u1", repository.Update{Path: "accountStatus", Value: "active"})

			return tx.Create("notifications", "welcome_u1", map[string]any{})
		})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)

		user, err := store.Get(ctx, "users", "u1")
		require.NoError(t, err)
		assert.NotContains(t, user.Data, "accountStatus")
	})

	t.Run("read after write is rejected", func(t *testing.T) {
		store := New()
		store.Put("users", "u1", map[string]any{})

		err := store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
			_ = tx.Update("users", "u1", repository.Update{Path: "a", Value: 1})
			_, err := tx.Get("users", "u1")

			return err
		})
		assert.Error(t, err)
	})
}

func TestStore_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Put("users", "farmer", map[string]any{})

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.RunTransaction(ctx, func(_ context.Context, tx repository.Tx) error {
				return tx.Update("users", "farmer", repository.Update{Path: "totalListings", Value: repository.Increment{Delta: 1}})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	doc, err := store.Get(ctx, "users", "farmer")
	require.NoError(t, err)
	assert.Equal(t, int64(n), doc.Data["totalListings"])
}

func TestStore_QueryAndListKeys(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Put("users", "b", map[string]any{"role": "farmer"})
	store.Put("users", "a", map[string]any{"role": "farmer"})
	store.Put("users", "c", map[string]any{"role": "buyer"})

	docs, err := store.Query(ctx, "users", repository.Filter{Path: "role", Value: "farmer"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Key)
	assert.Equal(t, "b", docs[1].Key)

	keys, err := store.ListKeys(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	keys, err = store.ListKeys(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStore_CommitBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects oversize batch", func(t *testing.T) {
		store := New(WithMaxBatchSize(1))
		err := store.CommitBatch(ctx, make([]repository.BatchWrite, 2))
		assert.ErrorIs(t, err, repository.ErrBatchTooLarge)
	})

	t.Run("missing document aborts whole batch", func(t *testing.T) {
		store := New()
		store.Put("products", "p1", map[string]any{"dailyViews": 9})

		err := store.CommitBatch(ctx, []repository.BatchWrite{
			{Collection: "products", Key: "p1", Updates: []repository.Update{{Path: "dailyViews", Value: 0}}},
			{Collection: "products", Key: "gone", Updates: []repository.Update{{Path: "dailyViews", Value: 0}}},
		})
		assert.ErrorIs(t, err, repository.ErrDocumentNotFound)

		doc, err := store.Get(ctx, "products", "p1")
		require.NoError(t, err)
		assert.Equal(t, 9, doc.Data["dailyViews"])
	})

	t.Run("hook rejects batch", func(t *testing.T) {
		boom := errors.New("unavailable")
		store := New(WithBatchHook(func(n int, _ []repository.BatchWrite) error {
			if n == 1 {
				return boom
			}

			return nil
		}))
		store.Put("products", "p1", map[string]any{})
		write := []repository.BatchWrite{{Collection: "products", Key: "p1", Updates: []repository.Update{{Path: "dailyViews", Value: 0}}}}

		require.NoError(t, store.CommitBatch(ctx, write))
		assert.ErrorIs(t, store.CommitBatch(ctx, write), boom)
	})
}

func TestStore_ServerTimestampNeverGoesBackwards(t *testing.T) {
	ctx := context.Background()
	times := []time.Time{
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	i := 0
	store := New(WithClock(func() time.Time {
		now := times[i%len(times)]
		i++

		return now
	}))
	store.Put("products", "p1", map[string]any{})
	write := repository.Update{Path: "lastDailyReset", Value: repository.ServerTimestamp}

	require.NoError(t, store.Update(ctx, "products", "p1", write))
	first, _ := store.Get(ctx, "products", "p1")
	require.NoError(t, store.Update(ctx, "products", "p1", write))
	second, _ := store.Get(ctx, "products", "p1")

	assert.False(t, second.Data["lastDailyReset"].(time.Time).Before(first.Data["lastDailyReset"].(time.Time)))
}
