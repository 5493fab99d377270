package auth

import (
	"context"

	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/service"
	"marketbridge/internal/infra/firebaseapp"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// idTokenVerifier abstracts the Firebase auth client for testing.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// firebaseVerifier verifies Firebase ID tokens issued to the client apps.
type firebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier creates a verifier backed by the Firebase Auth client.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (service.TokenVerifier, error) {
	if app == nil {
		return nil, errors.WithStack(firebaseapp.ErrNotConfigured)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

// VerifyToken checks signature, expiry and audience of a Firebase ID token.
func (v *firebaseVerifier) VerifyToken(ctx context.Context, token string) (*entity.Caller, error) {
	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ID token")
	}

	email, _ := verified.Claims["email"].(string)

	return &entity.Caller{
		UID:    verified.UID,
		Email:  email,
		Claims: verified.Claims,
	}, nil
}
