package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emberworks/ember/internal/config"
)

// fakeClient records uploads and can fail a configurable number of times.
type fakeClient struct {
	failures int
	calls    int
	bucket   string
	key      string
	path     string
}

func (f *fakeClient) FPutObject(ctx context.Context, bucket, objectName, filePath string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection reset")
	}
	f.bucket = bucket
	f.key = objectName
	f.path = filePath
	return nil
}

func newTestUploader(client s3Client) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  "ember-backups",
		prefix:  "backups",
		retries: 3,
		backoff: time.Millisecond,
	}
}

func TestS3Uploader_Upload(t *testing.T) {
	client := &fakeClient{}
	u := newTestUploader(client)

	if err := u.Upload(context.Background(), "/tmp/ember.db.snapshot"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if client.bucket != "ember-backups" {
		t.Errorf("bucket = %q", client.bucket)
	}
	if client.key != "backups/current.db" {
		t.Errorf("key = %q", client.key)
	}
	if client.path != "/tmp/ember.db.snapshot" {
		t.Errorf("path = %q", client.path)
	}
}

func TestS3Uploader_RetriesTransientFailures(t *testing.T) {
	client := &fakeClient{failures: 2}
	u := newTestUploader(client)

	if err := u.Upload(context.Background(), "/tmp/ember.db.snapshot"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if client.calls != 3 {
		t.Errorf("calls = %d, want 3", client.calls)
	}
}

func TestS3Uploader_GivesUpAfterMaxRetries(t *testing.T) {
	client := &fakeClient{failures: 10}
	u := newTestUploader(client)

	if err := u.Upload(context.Background(), "/tmp/ember.db.snapshot"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if client.calls != 4 {
		t.Errorf("calls = %d, want initial attempt plus 3 retries", client.calls)
	}
}

func TestS3Uploader_EmptyPrefix(t *testing.T) {
	client := &fakeClient{}
	u := newTestUploader(client)
	u.prefix = ""

	if err := u.Upload(context.Background(), "/tmp/ember.db.snapshot"); err != nil {
		t.Fatal(err)
	}
	if client.key != "current.db" {
		t.Errorf("key = %q", client.key)
	}
}

func TestNoopUploader(t *testing.T) {
	u := &NoopUploader{}
	if err := u.Upload(context.Background(), "/tmp/whatever.db"); err != nil {
		t.Fatalf("NoopUploader.Upload() error = %v", err)
	}
}

func TestNewUploader_NotConfigured(t *testing.T) {
	u, err := NewUploader(config.BackupConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := u.(*NoopUploader); !ok {
		t.Errorf("expected NoopUploader, got %T", u)
	}
}

func TestNewUploader_Configured(t *testing.T) {
	u, err := NewUploader(config.BackupConfig{
		Endpoint:  "s3.example.com",
		Bucket:    "ember-backups",
		Prefix:    "backups",
		AccessKey: "access",
		SecretKey: "secret",
		UseSSL:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := u.(*S3Uploader); !ok {
		t.Errorf("expected S3Uploader, got %T", u)
	}
}
