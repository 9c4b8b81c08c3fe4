package data

import (
	"context"
	"io"
	"time"

	"github.com/cdnstack/content-service/internal/content/biz"
	"github.com/cdnstack/content-service/internal/pkg/minio"
)

// ObjectStorage stores uploaded files in a MinIO bucket
type ObjectStorage struct {
	client *minio.Client
	bucket string
}

// NewObjectStorage creates the MinIO-backed file store
func NewObjectStorage(client *minio.Client, bucket string) biz.FileStorage {
	return &ObjectStorage{
		client: client,
		bucket: bucket,
	}
}

// Store writes the object and returns its key within the bucket
func (s *ObjectStorage) Store(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return info.Key, nil
}

// Remove deletes the object from the bucket
func (s *ObjectStorage) Remove(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, path)
}

// DownloadURL returns a presigned GET link for the object
func (s *ObjectStorage) DownloadURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, path, expiry, nil)
	if err != nil {
		return "", err
	}

	return u.String(), nil
}
