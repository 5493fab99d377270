package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "marketbridge/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// tokenValidator matches idtoken.Validate
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushAuth verifies the Google-signed OIDC token that Pub/Sub and Cloud Scheduler attach to
// push requests. Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
type PushAuth struct {
	validate tokenValidator
	logger   *slog.Logger
}

// NewPushAuth creates the push authentication middleware
func NewPushAuth(logger *slog.Logger) *PushAuth {
	return &PushAuth{validate: idtoken.Validate, logger: logger}
}

// Verify rejects requests whose token does not validate for this endpoint's URL
func (a *PushAuth) Verify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := a.verifyToken(c.Request()); err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), a.logger).
				Warn("[Worker] Invalid push token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}

		return next(c)
	}
}

func (a *PushAuth) verifyToken(req *http.Request) error {
	token, found := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return errors.New("missing bearer token")
	}

	// The audience is the push endpoint URL
	scheme := "https"
	if req.TLS == nil && req.Header.Get("X-Forwarded-Proto") != "https" {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := a.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
