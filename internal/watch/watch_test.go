// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w FileWatcher, timeout time.Duration) (Change, bool) {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c, true
	case <-time.After(timeout):
		return Change{}, false
	}
}

func TestFsnotifyWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFsnotifyWatcher(path, 50*time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer fw.Close()
	if err := fw.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	if err := os.WriteFile(path, []byte("{\"a\":1}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, ok := waitChange(t, fw, 3*time.Second)
	if !ok {
		t.Fatal("no change notification received")
	}
	if c.Removed {
		t.Error("write reported as removal")
	}
	if c.Path != path {
		t.Errorf("change path = %q, want %q", c.Path, path)
	}
}

func TestFsnotifyWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFsnotifyWatcher(path, 50*time.Millisecond)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer fw.Close()
	if err := fw.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	other := filepath.Join(dir, "other.jsonl")
	if err := os.WriteFile(other, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := waitChange(t, fw, 500*time.Millisecond); ok {
		t.Error("sibling file write should not notify")
	}
}

func TestPollingWatcherDetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pw := NewPollingWatcher(path, 50*time.Millisecond)
	defer pw.Close()
	if err := pw.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	// Force a visibly newer mod time; coarse filesystem clocks would
	// otherwise make the rewrite invisible.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	if _, ok := waitChange(t, pw, 3*time.Second); !ok {
		t.Fatal("no change notification received")
	}
}

func TestPollingWatcherDetectsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pw := NewPollingWatcher(path, 50*time.Millisecond)
	defer pw.Close()
	if err := pw.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	c, ok := waitChange(t, pw, 3*time.Second)
	if !ok {
		t.Fatal("no removal notification received")
	}
	if !c.Removed {
		t.Error("removal not flagged")
	}
}
