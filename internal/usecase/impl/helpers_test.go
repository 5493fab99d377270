package impl

import (
	"io"
	"log/slog"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Collections = config.CollectionsConfig{
		Listings:      constants.DefaultListingsCollection,
		Accounts:      constants.DefaultAccountsCollection,
		Notifications: constants.DefaultNotificationsCollection,
	}

	return cfg
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
