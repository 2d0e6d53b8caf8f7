// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch notifies the editor when the loaded source file changes on
// disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// FILE WATCHER INTERFACE
// =============================================================================

// FileWatcher is the interface for file watching implementations
type FileWatcher interface {
	// Watch starts watching for file changes
	Watch() error

	// Changes returns the channel change notifications are delivered on
	Changes() <-chan Change

	// Close stops watching and releases resources
	Close() error
}

// Change describes a detected modification of the watched file.
type Change struct {
	Path    string
	Removed bool
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher implements FileWatcher using fsnotify
type FsnotifyWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter
	changes  chan Change
	mu       sync.Mutex
	pending  *time.Time // last unflushed change
	removed  bool
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewFsnotifyWatcher creates a new fsnotify-based watcher for a single file.
func NewFsnotifyWatcher(path string, debounce time.Duration) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	fw := &FsnotifyWatcher{
		path:     path,
		watcher:  watcher,
		debounce: debounce,
		// Cap notification floods from editors that rewrite in bursts.
		limiter: rate.NewLimiter(rate.Every(debounce), 1),
		changes: make(chan Change, 8),
		ctx:     ctx,
		cancel:  cancel,
	}

	return fw, nil
}

// Watch starts watching for file changes
func (fw *FsnotifyWatcher) Watch() error {
	// Watch the parent directory, not the file itself: save-via-rename
	// replaces the inode and a direct watch would go stale.
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}

	go fw.processEvents()
	go fw.processPending()

	return nil
}

// Changes returns the notification channel.
func (fw *FsnotifyWatcher) Changes() <-chan Change {
	return fw.changes
}

// processEvents processes file system events
func (fw *FsnotifyWatcher) processEvents() {
	defer func() {
		if r := recover(); r != nil {
			// Non-fatal, goroutine exits
			_ = r
		}
	}()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(fw.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.markChanged(false)
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// A rename may be half of an atomic replace. Check whether
				// the file still exists before reporting removal.
				if _, err := os.Stat(fw.path); err != nil {
					fw.markChanged(true)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal
			_ = err
		}
	}
}

// markChanged records a change to be flushed after the debounce window.
func (fw *FsnotifyWatcher) markChanged(removed bool) {
	now := time.Now()
	fw.mu.Lock()
	fw.pending = &now
	fw.removed = removed
	fw.mu.Unlock()
}

// processPending flushes pending changes with debounce and rate limiting.
func (fw *FsnotifyWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			fw.mu.Lock()
			ready := fw.pending != nil && now.Sub(*fw.pending) >= fw.debounce
			removed := fw.removed
			if ready {
				fw.pending = nil
				fw.removed = false
			}
			fw.mu.Unlock()

			if !ready || !fw.limiter.Allow() {
				continue
			}

			select {
			case fw.changes <- Change{Path: fw.path, Removed: removed}:
			default:
				// Receiver is behind; drop rather than block the loop.
			}
		}
	}
}

// Close stops watching and releases resources
func (fw *FsnotifyWatcher) Close() error {
	fw.cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher implements FileWatcher using periodic polling
type PollingWatcher struct {
	path     string
	interval time.Duration
	changes  chan Change
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	modTime  time.Time
	exists   bool
}

// NewPollingWatcher creates a new polling-based watcher
func NewPollingWatcher(path string, interval time.Duration) *PollingWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &PollingWatcher{
		path:     path,
		interval: interval,
		changes:  make(chan Change, 8),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Watch starts watching for file changes
func (pw *PollingWatcher) Watch() error {
	info, err := os.Stat(pw.path)
	pw.mu.Lock()
	if err == nil {
		pw.modTime = info.ModTime()
		pw.exists = true
	}
	pw.mu.Unlock()

	go pw.poll()
	return nil
}

// Changes returns the notification channel.
func (pw *PollingWatcher) Changes() <-chan Change {
	return pw.changes
}

// poll periodically checks for file changes
func (pw *PollingWatcher) poll() {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			pw.checkChange()
		}
	}
}

// checkChange compares the current mod time against the last observed one.
func (pw *PollingWatcher) checkChange() {
	info, err := os.Stat(pw.path)

	pw.mu.Lock()
	var change *Change
	if err != nil {
		if pw.exists {
			pw.exists = false
			change = &Change{Path: pw.path, Removed: true}
		}
	} else {
		if !pw.exists || !info.ModTime().Equal(pw.modTime) {
			pw.exists = true
			pw.modTime = info.ModTime()
			change = &Change{Path: pw.path}
		}
	}
	pw.mu.Unlock()

	if change == nil {
		return
	}
	select {
	case pw.changes <- *change:
	default:
	}
}

// Close stops watching
func (pw *PollingWatcher) Close() error {
	pw.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// New starts a watcher for path (fsnotify with polling fallback).
func New(path string, debounce time.Duration) (FileWatcher, error) {
	fw, err := NewFsnotifyWatcher(path, debounce)
	if err == nil {
		if err := fw.Watch(); err == nil {
			return fw, nil
		}
		fw.Close()
	}

	pw := NewPollingWatcher(path, 2*time.Second)
	if err := pw.Watch(); err != nil {
		return nil, err
	}
	return pw, nil
}
