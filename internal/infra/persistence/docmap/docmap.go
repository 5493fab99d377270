// Package docmap applies document store writes to plain map documents. The memory and
// postgres adapters share it so both resolve field paths and write sentinels the same way.
package docmap

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"marketbridge/internal/domain/repository"

	"github.com/pkg/errors"
)

// Apply applies updates to data in place. Intermediate maps are created as needed and
// non-map intermediates are replaced.
func Apply(data map[string]any, updates []repository.Update, now time.Time) error {
	for _, update := range updates {
		segments := strings.Split(update.Path, ".")
		for _, segment := range segments {
			if segment == "" {
				return errors.Errorf("invalid field path %q", update.Path)
			}
		}

		parent := data
		for _, segment := range segments[:len(segments)-1] {
			child, ok := parent[segment].(map[string]any)
			if !ok {
				child = map[string]any{}
				parent[segment] = child
			}
			parent = child
		}

		leaf := segments[len(segments)-1]
		if inc, ok := update.Value.(repository.Increment); ok {
			next, err := increment(parent[leaf], inc.Delta)
			if err != nil {
				return errors.Wrapf(err, "field %s", update.Path)
			}
			parent[leaf] = next

			continue
		}

		parent[leaf] = resolve(update.Value, now)
	}

	return nil
}

// Materialize returns a deep copy of data with every sentinel resolved against now.
func Materialize(data map[string]any, now time.Time) map[string]any {
	out, _ := resolve(data, now).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}

	return out
}

// Clone deep-copies nested maps and slices. Leaf values are shared.
func Clone(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}

	return out
}

// Matches reports whether data satisfies every equality filter. Numbers compare by value
// regardless of their Go type.
func Matches(data map[string]any, filters []repository.Filter) bool {
	doc := &repository.Document{Data: data}
	for _, filter := range filters {
		got, ok := doc.Lookup(filter.Path)
		if !ok || !Equal(got, filter.Value) {
			return false
		}
	}

	return true
}

// Equal compares two document values.
func Equal(a, b any) bool {
	if fa, ok := ToFloat(a); ok {
		fb, ok := ToFloat(b)

		return ok && fa == fb
	}

	return reflect.DeepEqual(a, b)
}

// ToFloat converts any numeric document value to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}

// Normalize replaces json.Number values, as decoded from JSON columns, with int64 when the
// number is integral and float64 otherwise. data is modified in place and returned.
func Normalize(data map[string]any) map[string]any {
	for k, v := range data {
		data[k] = normalizeValue(v)
	}

	return data
}

func normalizeValue(v any) any {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}

		return value.String()
	case map[string]any:
		return Normalize(value)
	case []any:
		for i, child := range value {
			value[i] = normalizeValue(child)
		}

		return value
	default:
		return v
	}
}

func increment(current any, delta int64) (any, error) {
	switch n := current.(type) {
	case nil:
		return delta, nil
	case int:
		return int64(n) + delta, nil
	case int32:
		return int64(n) + delta, nil
	case int64:
		return n + delta, nil
	default:
		f, ok := ToFloat(current)
		if !ok {
			return nil, errors.Errorf("cannot increment non-numeric value of type %T", current)
		}

		return f + float64(delta), nil
	}
}

func resolve(v any, now time.Time) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, child := range value {
			out[k] = resolve(child, now)
		}

		return out
	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			out[i] = resolve(child, now)
		}

		return out
	case repository.Increment:
		return value.Delta
	default:
		if repository.IsServerTimestamp(v) {
			return now
		}

		return v
	}
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return Clone(value)
	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			out[i] = cloneValue(child)
		}

		return out
	default:
		return v
	}
}
