package usecase

import (
	"context"

	"marketbridge/internal/domain/entity"
)

// WelcomeUsecase builds the greeting returned to a freshly registered caller.
type WelcomeUsecase interface {
	SendWelcomeNotification(ctx context.Context, caller *entity.Caller, userName, userRole string) (*entity.WelcomeGreeting, error)
}
