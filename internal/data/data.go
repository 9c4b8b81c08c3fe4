package data

import (
	"context"
	"fmt"

	"github.com/cdnstack/content-service/internal/conf"
	contentdata "github.com/cdnstack/content-service/internal/content/data"
	"github.com/cdnstack/content-service/internal/pkg/database"
	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/cdnstack/content-service/internal/pkg/minio"
	"github.com/cdnstack/content-service/internal/pkg/redis"
)

// Data holds the shared infrastructure clients. RedisClient is nil when the
// memory cache backend is selected, MinIOClient is nil when object storage
// is not configured.
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
	MinIOClient *minio.Client
	Logger      *logger.Logger
}

// NewData connects the configured backends and runs schema migration. The
// returned cleanup closes every connection that was opened.
func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := database.New(&config.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	if config.Database.AutoMigrate {
		if err := db.AutoMigrate(&contentdata.ContentPO{}); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	var redisClient *redis.Client
	if config.Cache.Backend == conf.CacheBackendRedis {
		redisClient, err = redis.New(&config.Redis, log)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	var minioClient *minio.Client
	if config.ObjectStorageEnabled() {
		minioClient, err = minio.NewClient(&config.MinIO, log)
		if err != nil {
			closeAll(db, redisClient)
			return nil, nil, fmt.Errorf("failed to init minio: %w", err)
		}

		if err := minioClient.EnsureBucket(context.Background(), config.MinIO.Bucket); err != nil {
			closeAll(db, redisClient)
			return nil, nil, fmt.Errorf("failed to ensure bucket: %w", err)
		}
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")
		closeAll(db, redisClient)
	}

	return d, cleanup, nil
}

func closeAll(db *database.DB, redisClient *redis.Client) {
	if db != nil {
		db.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
}
