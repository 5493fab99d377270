package docmap

import (
	"encoding/json"
	"testing"
	"time"

	"marketbridge/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("nested paths and sentinels", func(t *testing.T) {
		data := map[string]any{"totalListings": int64(2)}

		err := Apply(data, []repository.Update{
			{Path: "totalListings", Value: repository.Increment{Delta: 1}},
			{Path: "lastListingAt", Value: repository.ServerTimestamp},
			{Path: "stats.rating", Value: 0},
		}, now)
		require.NoError(t, err)

		assert.Equal(t, int64(3), data["totalListings"])
		assert.Equal(t, now, data["lastListingAt"])
		assert.Equal(t, map[string]any{"rating": 0}, data["stats"])
	})

	t.Run("increment on missing and float fields", func(t *testing.T) {
		data := map[string]any{"views": float64(4)}

		require.NoError(t, Apply(data, []repository.Update{
			{Path: "counter", Value: repository.Increment{Delta: 1}},
			{Path: "views", Value: repository.Increment{Delta: 2}},
		}, now))

		assert.Equal(t, int64(1), data["counter"])
		assert.Equal(t, float64(6), data["views"])
	})

	t.Run("increment on non-numeric field fails", func(t *testing.T) {
		data := map[string]any{"name": "tomatoes"}

		err := Apply(data, []repository.Update{{Path: "name", Value: repository.Increment{Delta: 1}}}, now)
		assert.Error(t, err)
	})

	t.Run("empty path segment fails", func(t *testing.T) {
		err := Apply(map[string]any{}, []repository.Update{{Path: "stats..rating", Value: 1}}, now)
		assert.Error(t, err)
	})
}

func TestMaterialize(t *testing.T) {
	now := time.Now().UTC()
	src := map[string]any{
		"createdAt": repository.ServerTimestamp,
		"stats":     map[string]any{"totalOrders": 0},
	}

	out := Materialize(src, now)

	assert.Equal(t, now, out["createdAt"])
	out["stats"].(map[string]any)["totalOrders"] = 5
	assert.Equal(t, 0, src["stats"].(map[string]any)["totalOrders"], "source must not be mutated")
}

func TestMatches(t *testing.T) {
	data := map[string]any{"inStock": true, "role": "farmer", "price": int64(100)}

	assert.True(t, Matches(data, []repository.Filter{{Path: "inStock", Value: true}}))
	assert.True(t, Matches(data, []repository.Filter{{Path: "price", Value: 100.0}}))
	assert.False(t, Matches(data, []repository.Filter{{Path: "role", Value: "buyer"}}))
	assert.False(t, Matches(data, []repository.Filter{{Path: "missing", Value: true}}))
	assert.True(t, Matches(data, nil))
}

func TestNormalize(t *testing.T) {
	data := map[string]any{
		"totalListings": json.Number("3"),
		"price":         json.Number("12.5"),
		"name":          "Tomatoes",
		"stats":         map[string]any{"rating": json.Number("0")},
		"tags":          []any{json.Number("1"), "organic"},
	}

	got := Normalize(data)

	assert.Equal(t, map[string]any{
		"totalListings": int64(3),
		"price":         12.5,
		"name":          "Tomatoes",
		"stats":         map[string]any{"rating": int64(0)},
		"tags":          []any{int64(1), "organic"},
	}, got)
}
