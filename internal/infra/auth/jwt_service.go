// Package auth provides concrete implementations for caller authentication.
package auth

import (
	"context"
	"time"

	"marketbridge/internal/domain/entity"
	"marketbridge/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtVerifier verifies HS256 bearer tokens signed with a shared secret. It serves
// deployments that front the API with their own identity provider instead of Firebase.
type jwtVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier is the constructor for jwtVerifier.
func NewJWTVerifier(secret, issuer string) (service.TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// VerifyToken parses and validates the token. The subject becomes the caller UID.
func (v *jwtVerifier) VerifyToken(_ context.Context, tokenString string) (*entity.Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, errors.New("token has no subject")
	}

	email, _ := claims["email"].(string)

	return &entity.Caller{
		UID:    subject,
		Email:  email,
		Claims: claims,
	}, nil
}

// SignToken issues an HS256 token for subject. It is used by operators and tests to call
// the API against a jwt-configured deployment.
func SignToken(secret, issuer, subject, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	if email != "" {
		claims["email"] = email
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))

	return signed, errors.WithStack(err)
}
