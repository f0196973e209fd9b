// Package storage wraps the MinIO client used for report photos
// (citizen uploads plus cleaner before/after proof shots).
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type PhotoStore struct {
	client *minio.Client
	bucket string
}

// NewPhotoStore connects to MinIO and makes sure the bucket exists.
func NewPhotoStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*PhotoStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", bucket, err)
		}
	}

	return &PhotoStore{client: client, bucket: bucket}, nil
}

// Upload stores a photo under objectName and returns the object path.
func (p *PhotoStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", objectName, err)
	}
	return fmt.Sprintf("/%s/%s", p.bucket, objectName), nil
}

// PresignedGet returns a time-limited download URL for a stored photo.
func (p *PhotoStore) PresignedGet(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := p.client.PresignedGetObject(ctx, p.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %q: %w", objectName, err)
	}
	return u.String(), nil
}
