package postgres

import (
	"database/sql/driver"

	"marketbridge/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the store reacts to.
const (
	sqlStateUniqueViolation      = "23505"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateAdminShutdown        = "57P01"
	sqlStateCannotConnectNow     = "57P03"
)

// classify maps GORM and PostgreSQL failures onto the repository error taxonomy.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrDocumentNotFound) ||
		errors.Is(err, repository.ErrAlreadyExists) ||
		repository.IsTransient(err) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(repository.ErrDocumentNotFound, op)
	}

	if isUniqueConstraintViolation(err) {
		return errors.Wrap(repository.ErrAlreadyExists, op)
	}

	if isRetryable(err) {
		return repository.NewTransientError(errors.Wrap(err, op))
	}

	return errors.Wrap(err, op)
}

func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error (set when TranslateError is enabled)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation
}

func isRetryable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable,
		sqlStateAdminShutdown, sqlStateCannotConnectNow:
		return true
	default:
		return false
	}
}
