package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	ignored := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(spec, []byte("name: p\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name == ignored {
				t.Fatalf("non-spec file should be filtered")
			}
			if name == spec {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", spec)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = w.Close()
	if _, ok := <-w.Events; ok {
		t.Fatalf("events should be closed")
	}
	if got := w.Drain(); len(got) != 0 {
		t.Fatalf("expected nothing after close, got %v", got)
	}
	for i := 0; i < 3; i++ {
		if err := w.Err(); err != nil {
			t.Fatalf("closed watcher reported %v", err)
		}
	}
}

func TestWatcherErrReturnsQueuedError(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := w.Err(); err != nil {
		t.Fatalf("idle watcher reported %v", err)
	}
	want := errors.New("overflow")
	w.Errors <- want
	if got := w.Err(); !errors.Is(got, want) {
		t.Fatalf("Err() = %v, want %v", got, want)
	}
	if err := w.Err(); err != nil {
		t.Fatalf("error should be consumed, got %v", err)
	}
}

func TestScriptFileFilter(t *testing.T) {
	cases := map[string]bool{
		"a.tengo":   true,
		"b.TENGO":   true,
		"c.yaml":    false,
		"scripts/d": false,
	}
	for name, want := range cases {
		if got := IsScriptFile(name); got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}
