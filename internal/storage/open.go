// Package storage opens the list repository selected by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/config"
	"github.com/rezkam/listly/internal/infrastructure/persistence/mongo"
	"github.com/rezkam/listly/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/listly/internal/infrastructure/persistence/sqlite"
	"github.com/rezkam/listly/internal/storage/fs"
	"github.com/rezkam/listly/internal/storage/gcs"
	"github.com/rezkam/listly/internal/storage/memory"
	"github.com/rezkam/listly/internal/storage/redis"
	"github.com/rezkam/listly/internal/storage/s3"
)

const mongoCloseTimeout = 5 * time.Second

// Repository is a list repository that owns connections to release on shutdown.
type Repository interface {
	lists.Repository
	io.Closer
}

// Open connects to the backend named by cfg.Type.
func Open(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return nopCloser{memory.NewStore()}, nil

	case config.StorageFS:
		store, err := fs.NewStore(cfg.FSDir)
		if err != nil {
			return nil, err
		}
		return nopCloser{store}, nil

	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StoragePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.PostgresDSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			SkipMigrations:  !cfg.AutoMigrate,
		})
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StorageMongo:
		store, err := mongo.NewStore(ctx, mongo.Config{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
		return mongoCloser{store}, nil

	case config.StorageRedis:
		store, err := redis.NewStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StorageGCS:
		store, err := gcs.NewStore(ctx, cfg.GCSBucket, cfg.GCSPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StorageS3:
		store, err := s3.NewStore(ctx, s3.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			UseSSL:          cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return nopCloser{store}, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageType, cfg.Type)
	}
}

type nopCloser struct {
	lists.Repository
}

func (nopCloser) Close() error { return nil }

type mongoCloser struct {
	*mongo.Store
}

func (m mongoCloser) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return m.Store.Close(ctx)
}
