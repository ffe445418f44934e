package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"episode.wav", true},
		{"episode.MP3", true},
		{"/in/show.m4a", true},
		{"take.flac", true},
		{"clip.ogg", true},
		{"notes.txt", false},
		{"video.mp4", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

type recorder struct {
	mu   sync.Mutex
	seen []string
	ch   chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	r.seen = append(r.seen, path)
	r.mu.Unlock()
	r.ch <- path
	return nil
}

func (r *recorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case p := <-r.ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
		return ""
	}
}

func TestStartHandlesExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.mp3")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := newRecorder()
	w, err := newWatcher(dir, rec.handle, logger.Nop(), 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	if got := rec.wait(t); got != existing {
		t.Errorf("first handled = %q, want %q", got, existing)
	}

	fresh := filepath.Join(dir, "new.wav")
	if err := os.WriteFile(fresh, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := rec.wait(t); got != fresh {
		t.Errorf("second handled = %q, want %q", got, fresh)
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, p := range rec.seen {
		if filepath.Ext(p) == ".txt" {
			t.Errorf("non-audio file handled: %s", p)
		}
	}
}

func TestNewInvalidDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), newRecorder().handle, logger.Nop(), 1); err == nil {
		t.Error("New() should fail for a missing directory")
	}
}

func TestStartCancelDuringSettle(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	w, err := newWatcher(dir, rec.handle, logger.Nop(), 1, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// let the scan of the empty dir finish before creating the file
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "late.wav"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() kept waiting out the settle delay after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.seen) != 0 {
		t.Errorf("handler called for %v before the file settled", rec.seen)
	}
}
