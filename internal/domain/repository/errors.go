package repository

import (
	"errors"
	"fmt"
)

// Domain-specific errors for document persistence.
var (
	// ErrDocumentNotFound is returned when a document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when creating a document whose key is taken.
	ErrAlreadyExists = errors.New("document already exists")
	// ErrBatchTooLarge is returned when a batch exceeds the adapter's capacity.
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)

// transientError marks a failure caused by contention or unavailability; the operation may
// succeed if attempted again.
type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return fmt.Sprintf("transient: %v", e.err)
}

func (e *transientError) Unwrap() error {
	return e.err
}

// NewTransientError wraps err as transient. A nil err stays nil.
func NewTransientError(err error) error {
	if err == nil {
		return nil
	}

	return &transientError{err: err}
}

// IsTransient reports whether err, or anything it wraps, is transient.
func IsTransient(err error) bool {
	var te *transientError

	return errors.As(err, &te)
}
