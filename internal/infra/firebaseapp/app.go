// Package firebaseapp builds the shared Firebase app used by Firestore, FCM and ID token
// verification.
package firebaseapp

import (
	"context"
	"log/slog"

	"marketbridge/config"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New initializes the Firebase app. It returns nil when Firebase is not configured, so
// components that do not need it can still start in local development.
func New(params Params) (*firebase.App, error) {
	cfg := params.Config.Firebase
	if cfg == nil {
		params.Logger.Info("Firebase not configured")

		return nil, nil //nolint:nilnil
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(params.Ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	params.Logger.Info("Firebase app initialized", slog.String("project_id", cfg.ProjectID))

	return app, nil
}

// ErrNotConfigured is returned by components that require a Firebase app when none exists.
var ErrNotConfigured = errors.New("firebase is not configured")
