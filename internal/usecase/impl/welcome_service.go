package impl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketbridge/internal/domain/entity"
	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/usecase"
)

// welcomeService implements the WelcomeUsecase interface.
type welcomeService struct {
	now func() time.Time
}

// NewWelcomeService creates a new welcome service instance
func NewWelcomeService() usecase.WelcomeUsecase {
	return &welcomeService{now: func() time.Time { return time.Now().UTC() }}
}

// SendWelcomeNotification greets an authenticated caller.
func (s *welcomeService) SendWelcomeNotification(_ context.Context, caller *entity.Caller, userName, userRole string) (*entity.WelcomeGreeting, error) {
	if caller == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	userName, userRole = strings.TrimSpace(userName), strings.TrimSpace(userRole)
	if userName == "" || userRole == "" {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("Missing required fields: userName and userRole")
	}

	return &entity.WelcomeGreeting{
		Success:   true,
		Message:   fmt.Sprintf("Welcome to MarketBridge, %s! You're registered as a %s.", userName, userRole),
		Timestamp: s.now(),
	}, nil
}
