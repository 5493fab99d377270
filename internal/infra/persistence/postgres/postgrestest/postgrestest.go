// Package postgrestest opens a postgres.Store for tests. With TEST_POSTGRES_DSN set the
// store runs on that database, otherwise on an in-memory SQLite database through the same
// GORM code paths. Row locks are a no-op on SQLite, where the single connection serializes
// transactions instead.
package postgrestest

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"marketbridge/internal/infra/persistence/model"
	"marketbridge/internal/infra/persistence/postgres"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

//nolint:gochecknoglobals
var dbSeq atomic.Int64

// NewStore returns an empty store with the given batch size. The database is released when
// the test ends.
func NewStore(tb testing.TB, maxBatchSize int, opts ...postgres.Option) *postgres.Store {
	tb.Helper()

	db := open(tb)

	store, err := postgres.NewStore(context.Background(), db, maxBatchSize, opts...)
	if err != nil {
		tb.Fatalf("create store: %v", err)
	}

	// Shared databases start every test from an empty table
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.DocumentModel{}).Error; err != nil {
		tb.Fatalf("clear documents: %v", err)
	}

	return store
}

func open(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	}

	var dialector gorm.Dialector
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		dialector = gormPostgres.Open(dsn)
	} else {
		name := fmt.Sprintf("file:marketbridge_%d?mode=memory&cache=shared", dbSeq.Add(1))
		dialector = sqlite.Open(name)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("get sql.DB: %v", err)
	}
	if db.Dialector.Name() == "sqlite" {
		// One connection keeps the in-memory database alive and serializes transactions
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
