package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockBackupStore implements the BackupStore interface for testing.
type mockBackupStore struct {
	mu            sync.Mutex
	generateCalls int
	generateErr   error
}

func (m *mockBackupStore) GenerateSnapshot(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generateCalls++
	return m.generateErr
}

func (m *mockBackupStore) SnapshotPath() string { return "/tmp/ember.db.snapshot" }

func (m *mockBackupStore) GetGenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// mockUploader implements the SnapshotUploader interface for testing.
type mockUploader struct {
	mu          sync.Mutex
	uploadCalls int
	lastPath    string
	uploadErr   error
}

func (m *mockUploader) Upload(ctx context.Context, filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadCalls++
	m.lastPath = filePath
	return m.uploadErr
}

func (m *mockUploader) GetUploadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploadCalls
}

func runWorker(t *testing.T, w *BackupWorker) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	return func() {
		stop()
		<-done
	}
}

func TestBackupWorker_RunsOnStart(t *testing.T) {
	store := &mockBackupStore{}
	uploader := &mockUploader{}
	worker := NewBackupWorker(store, uploader, time.Hour)

	stop := runWorker(t, worker)
	time.Sleep(50 * time.Millisecond)
	stop()

	if store.GetGenerateCalls() < 1 {
		t.Errorf("expected at least 1 snapshot on start, got %d", store.GetGenerateCalls())
	}
	if uploader.GetUploadCalls() < 1 {
		t.Errorf("expected at least 1 upload on start, got %d", uploader.GetUploadCalls())
	}
	uploader.mu.Lock()
	path := uploader.lastPath
	uploader.mu.Unlock()
	if path != "/tmp/ember.db.snapshot" {
		t.Errorf("upload path = %q", path)
	}
}

func TestBackupWorker_RunsOnInterval(t *testing.T) {
	store := &mockBackupStore{}
	uploader := &mockUploader{}
	worker := NewBackupWorker(store, uploader, 20*time.Millisecond)

	stop := runWorker(t, worker)
	time.Sleep(110 * time.Millisecond)
	stop()

	if calls := store.GetGenerateCalls(); calls < 3 {
		t.Errorf("expected repeated snapshots, got %d", calls)
	}
}

func TestBackupWorker_GenerationFailureSkipsUpload(t *testing.T) {
	store := &mockBackupStore{generateErr: errors.New("disk full")}
	uploader := &mockUploader{}
	worker := NewBackupWorker(store, uploader, time.Hour)

	stop := runWorker(t, worker)
	time.Sleep(50 * time.Millisecond)
	stop()

	if uploader.GetUploadCalls() != 0 {
		t.Errorf("upload ran despite generation failure, calls = %d", uploader.GetUploadCalls())
	}
}

func TestBackupWorker_UploadFailureDoesNotStopLoop(t *testing.T) {
	store := &mockBackupStore{}
	uploader := &mockUploader{uploadErr: errors.New("connection refused")}
	worker := NewBackupWorker(store, uploader, 20*time.Millisecond)

	stop := runWorker(t, worker)
	time.Sleep(110 * time.Millisecond)
	stop()

	if calls := store.GetGenerateCalls(); calls < 3 {
		t.Errorf("worker stopped retrying after upload failure, snapshots = %d", calls)
	}
}

func TestBackupWorker_StopsOnContextCancel(t *testing.T) {
	store := &mockBackupStore{}
	uploader := &mockUploader{}
	worker := NewBackupWorker(store, uploader, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}
