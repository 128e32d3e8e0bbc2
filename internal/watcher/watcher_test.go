package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.yaml")
	if err := os.WriteFile(path, []byte("nodes: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int32
	w, err := New(path, 10*time.Millisecond, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("nodes:\n  - id: a\n    label: A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for fired.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("callback never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.yaml")
	if err := os.WriteFile(path, []byte("nodes: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int32
	w, err := New(path, 10*time.Millisecond, func() { fired.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatalf("fired %d times for a sibling file", fired.Load())
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "network.yaml")
	if err := os.WriteFile(path, []byte("nodes: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, 0, func() {})
	if err != nil {
		t.Fatal(err)
	}
	w.Close()
	w.Close() // must not panic
}
