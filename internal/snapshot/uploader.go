// Package snapshot provides S3-compatible backup upload for the database
// snapshot file. When backup storage is not configured (empty bucket), the
// NoopUploader is used and all uploads are skipped, keeping the system in
// local-only mode.
package snapshot

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sethvargo/go-retry"

	"github.com/emberworks/ember/internal/config"
)

// Uploader ships a database snapshot file to backup storage.
type Uploader interface {
	// Upload stores the snapshot file at filePath under the configured
	// bucket. Transient failures are retried before returning an error.
	Upload(ctx context.Context, filePath string) error
}

// s3Client defines the minimal minio.Client operation used by S3Uploader.
// This interface enables testing with mock implementations.
type s3Client interface {
	FPutObject(ctx context.Context, bucket, objectName, filePath string) error
}

// minioClientWrapper wraps *minio.Client to satisfy the s3Client interface.
type minioClientWrapper struct {
	client *minio.Client
}

func (w *minioClientWrapper) FPutObject(ctx context.Context, bucket, objectName, filePath string) error {
	opts := minio.PutObjectOptions{ContentType: "application/octet-stream"}
	_, err := w.client.FPutObject(ctx, bucket, objectName, filePath, opts)
	return err
}

// S3Uploader uploads snapshots to S3-compatible storage with exponential
// backoff on transient failures.
type S3Uploader struct {
	client  s3Client
	bucket  string
	prefix  string
	retries uint64
	backoff time.Duration
}

// Upload stores the snapshot file under {prefix}/current.db, overwriting
// the previous backup.
func (u *S3Uploader) Upload(ctx context.Context, filePath string) error {
	key := objectKey(u.prefix)

	backoff := retry.WithMaxRetries(u.retries, retry.NewExponential(u.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := u.client.FPutObject(ctx, u.bucket, key, filePath); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	return nil
}

// NoopUploader is used when backup storage is not configured.
type NoopUploader struct{}

// Upload is a no-op when backup storage is not configured.
func (u *NoopUploader) Upload(ctx context.Context, filePath string) error {
	return nil
}

// NewUploader creates the appropriate Uploader based on configuration.
// Returns NoopUploader when backups are not configured, S3Uploader otherwise.
func NewUploader(cfg config.BackupConfig) (Uploader, error) {
	if !cfg.Enabled() {
		return &NoopUploader{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create backup client: %w", err)
	}

	return &S3Uploader{
		client:  &minioClientWrapper{client: client},
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		retries: 3,
		backoff: time.Second,
	}, nil
}

// objectKey returns the object key for the current snapshot.
func objectKey(prefix string) string {
	return path.Join(prefix, "current.db")
}
