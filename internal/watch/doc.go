// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch detects external modifications to the loaded source file.
//
// The primary implementation uses fsnotify on the file's parent directory
// so save-via-rename is seen; a polling implementation is the fallback for
// platforms where fsnotify fails. Notifications are debounced and rate
// limited so editors that write in bursts produce a single change event.
//
// # Key Types
//
//   - FileWatcher: the watcher interface (Watch, Changes, Close)
//   - Change: one detected modification, with a Removed flag
//   - FsnotifyWatcher: fsnotify-based implementation
//   - PollingWatcher: stat-polling fallback
//
// # Usage
//
//	w, err := watch.New("data.jsonl", 500*time.Millisecond)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	for change := range w.Changes() {
//		// offer the user a reload
//	}
package watch
