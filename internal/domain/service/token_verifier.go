package service

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// TokenVerifier checks bearer tokens presented by callers of the callable API.
type TokenVerifier interface {
	// VerifyToken validates the token and returns the caller it identifies.
	VerifyToken(ctx context.Context, token string) (*entity.Caller, error)
}
