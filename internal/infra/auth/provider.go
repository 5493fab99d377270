package auth

import (
	"context"
	"log/slog"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"
	"marketbridge/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for TokenVerifier, injected by Fx
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewTokenVerifier creates a TokenVerifier based on configuration. Firebase ID tokens are
// the default.
func NewTokenVerifier(params VerifierParams) (service.TokenVerifier, error) {
	provider := constants.AuthProviderFirebase
	if params.Config.Auth != nil && params.Config.Auth.Provider != "" {
		provider = params.Config.Auth.Provider
	}

	switch provider {
	case constants.AuthProviderFirebase:
		params.Logger.Info("Using Firebase ID token verifier")

		return NewFirebaseVerifier(params.Ctx, params.App)

	case constants.AuthProviderJWT:
		params.Logger.Info("Using HS256 JWT verifier")

		return NewJWTVerifier(params.Config.Auth.JWTSecret, params.Config.Auth.Issuer)

	default:
		return nil, errors.Errorf("unknown auth provider: %s", provider)
	}
}
