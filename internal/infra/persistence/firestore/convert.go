package firestore

import (
	"marketbridge/internal/domain/repository"

	gcfs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toUpdates(updates []repository.Update) []gcfs.Update {
	out := make([]gcfs.Update, 0, len(updates))
	for _, update := range updates {
		out = append(out, gcfs.Update{Path: update.Path, Value: toValue(update.Value)})
	}

	return out
}

// toValue swaps store-neutral sentinels for their Firestore transforms.
func toValue(v any) any {
	switch value := v.(type) {
	case repository.Increment:
		return gcfs.Increment(value.Delta)
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, child := range value {
			out[k] = toValue(child)
		}

		return out
	default:
		if repository.IsServerTimestamp(v) {
			return gcfs.ServerTimestamp
		}

		return v
	}
}

// classify maps gRPC status codes onto the repository error taxonomy.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	switch status.Code(err) {
	case codes.NotFound:
		return errors.Wrapf(repository.ErrDocumentNotFound, "%s: %v", op, err)
	case codes.AlreadyExists:
		return errors.Wrapf(repository.ErrAlreadyExists, "%s: %v", op, err)
	case codes.Aborted, codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return repository.NewTransientError(errors.Wrap(err, op))
	default:
		return errors.Wrap(err, op)
	}
}
