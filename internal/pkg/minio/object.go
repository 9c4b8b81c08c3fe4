package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PutObjectOptions represents options for uploading an object
type PutObjectOptions struct {
	ContentType  string
	UserMetadata map[string]string
}

// UploadInfo represents information about an uploaded object
type UploadInfo struct {
	Bucket string
	Key    string
	ETag   string
	Size   int64
}

// PutObject uploads an object to a bucket
func (c *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts PutObjectOptions) (UploadInfo, error) {
	if bucketName == "" || objectName == "" {
		return UploadInfo{}, fmt.Errorf("minio: bucket and object names are required")
	}

	info, err := c.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.UserMetadata,
	})
	if err != nil {
		c.logger.Error("minio put object failed",
			zap.String("bucket", bucketName),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return UploadInfo{}, fmt.Errorf("minio: put object failed: %w", err)
	}

	return UploadInfo{
		Bucket: info.Bucket,
		Key:    info.Key,
		ETag:   info.ETag,
		Size:   info.Size,
	}, nil
}

// RemoveObject removes an object from a bucket
func (c *Client) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	if bucketName == "" || objectName == "" {
		return fmt.Errorf("minio: bucket and object names are required")
	}

	if err := c.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		c.logger.Error("minio remove object failed",
			zap.String("bucket", bucketName),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return fmt.Errorf("minio: remove object failed: %w", err)
	}

	return nil
}

// StatObject returns metadata for an object
func (c *Client) StatObject(ctx context.Context, bucketName, objectName string) (minio.ObjectInfo, error) {
	return c.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
}

// PresignedGetObject generates a presigned download URL for an object
func (c *Client) PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error) {
	if bucketName == "" || objectName == "" {
		return nil, fmt.Errorf("minio: bucket and object names are required")
	}

	u, err := c.client.PresignedGetObject(ctx, bucketName, objectName, expiry, reqParams)
	if err != nil {
		c.logger.Error("minio presign failed",
			zap.String("bucket", bucketName),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("minio: presign failed: %w", err)
	}

	return u, nil
}
