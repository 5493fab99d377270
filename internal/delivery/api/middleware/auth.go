// Package middleware contains the callable API's echo middlewares.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "marketbridge/internal/delivery/context"
	domainerrors "marketbridge/internal/domain/errors"
	"marketbridge/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Verifier service.TokenVerifier
	Logger   *slog.Logger
}

// AuthMiddleware resolves the bearer token on callable requests into a Caller.
type AuthMiddleware struct {
	verifier service.TokenVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{verifier: params.Verifier, logger: params.Logger}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(token) == "" {
			return domainerrors.ErrUnauthenticated
		}

		ctx := c.Request().Context()
		caller, err := m.verifier.VerifyToken(ctx, strings.TrimSpace(token))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rejected bearer token", slog.Any("error", err))

			return domainerrors.ErrUnauthenticated
		}

		c.SetRequest(c.Request().WithContext(deliverycontext.WithCaller(ctx, caller)))

		return next(c)
	}
}
