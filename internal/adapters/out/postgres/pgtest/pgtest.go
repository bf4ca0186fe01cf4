// Package pgtest opens throwaway databases with the workshop schema for
// repository, unit of work and query tests.
package pgtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"workshop/internal/adapters/out/postgres"

	"github.com/glebarez/sqlite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tables lists the tables truncated between integration tests.
const Tables = "orders, clients, settings"

// NewSQLite opens a migrated pure-Go SQLite database in t's temp dir. The
// handle is closed when the test ends.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("workshop_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err = postgres.Migrate(context.Background(), db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// StartPostgres runs a postgres:15-alpine container and returns it with a
// migrated connection. Callers terminate the container.
func StartPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, *gorm.DB, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return container, nil, err
	}

	if err = postgres.Migrate(ctx, db); err != nil {
		return container, nil, err
	}
	return container, db, nil
}
