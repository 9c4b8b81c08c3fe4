package minio

import (
	"context"
	"fmt"

	"github.com/cdnstack/content-service/internal/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Client wraps the MinIO client with additional functionality
type Client struct {
	client *minio.Client
	config *Config
	logger *logger.Logger
}

// NewClient creates a new MinIO client
func NewClient(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("minio: nil configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("minio: invalid configuration: %w", err)
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: failed to create client: %w", err)
	}

	log.Info("minio client initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("ssl", cfg.UseSSL),
	)

	return &Client{
		client: minioClient,
		config: cfg,
		logger: log,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist
func (c *Client) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := c.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("minio: bucket check failed: %w", err)
	}

	if !exists {
		if err := c.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
			return fmt.Errorf("minio: make bucket failed: %w", err)
		}
		c.logger.Info("minio bucket created", zap.String("bucket", bucketName))
	}

	return nil
}

// Config returns the client configuration
func (c *Client) Config() *Config {
	return c.config
}
