package cmd

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/adapters/out/attachments"
	"workshop/internal/adapters/out/locks"
	"workshop/internal/adapters/out/publisher"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Closer releases an adapter on shutdown.
type Closer func() error

// OpenDatabase connects to the configured driver and installs the gorm
// tracing plugin.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = gormpostgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	if err = db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("install gorm tracing: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == DriverSQLite {
		// one writer keeps sqlite from reporting "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}
	return db, nil
}

// OpenAttachmentStore returns the configured store. The local store is also
// served by the HTTP router.
func OpenAttachmentStore(ctx context.Context, cfg Config) (ports.AttachmentStore, Closer, error) {
	switch cfg.AttachmentBackend {
	case AttachmentsGCS:
		store, err := attachments.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSON)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := attachments.NewLocalStore(cfg.AttachmentDir, cfg.AttachmentBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}
}

// OpenLocker returns the per-order lock. Redis is needed once more than one
// instance serves the same database.
func OpenLocker(ctx context.Context, cfg Config) (ports.OrderLocker, Closer, error) {
	if cfg.LockBackend != LocksRedis {
		return locks.NewMemoryLocker(), func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return locks.NewRedisLocker(rdb, cfg.LockTTL), rdb.Close, nil
}

// OpenPublisher returns the Pub/Sub publisher when enabled and the log
// publisher otherwise.
func OpenPublisher(ctx context.Context, cfg Config) (ports.EventPublisher, Closer, error) {
	if !cfg.PubSubEnabled {
		logger.Infow(ctx, "pubsub disabled, domain events go to the log")
		return publisher.LogPublisher{}, func() error { return nil }, nil
	}

	p, err := publisher.NewPubSubPublisher(ctx, cfg.PubSubProjectID, cfg.PubSubTopic)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
