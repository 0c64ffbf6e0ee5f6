// Package minio stores uploaded evidence and document photos in an
// S3-compatible bucket.
package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"renza-entrega/internal/config"
	"renza-entrega/internal/storage"
)

type Media struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func New(cfg config.Media) (*Media, error) {
	const op = "storage.minio.New"

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Media{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (m *Media) EnsureBucket(ctx context.Context) error {
	const op = "storage.minio.EnsureBucket"

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("%s: check bucket: %w", op, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%s: create bucket: %w", op, err)
	}

	return nil
}

func (m *Media) Put(ctx context.Context, up storage.Upload) (storage.StoredMedia, error) {
	const op = "storage.minio.Put"

	size := up.Size
	if size <= 0 {
		size = -1
	}

	info, err := m.client.PutObject(ctx, m.bucket, up.Key, up.Body, size, minio.PutObjectOptions{
		ContentType: up.ContentType,
	})
	if err != nil {
		return storage.StoredMedia{}, fmt.Errorf("%s: key=%s: %w", op, up.Key, err)
	}

	return storage.StoredMedia{
		Key:         up.Key,
		URL:         m.ObjectURL(up.Key),
		ContentType: up.ContentType,
		Size:        info.Size,
	}, nil
}

// ObjectURL returns the public path of an object; reading it requires a
// bucket policy that allows it.
func (m *Media) ObjectURL(key string) string {
	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.endpoint, m.bucket, key)
}
