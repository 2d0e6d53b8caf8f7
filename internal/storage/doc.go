// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable backup slot for the trainingset editor.
//
// The editor keeps exactly one backup: the full document, with preference
// annotations inlined, written on every explicit save. The slot is a single
// row in a local SQLite database, overwritten in place - no versioning, no
// conflict resolution. On startup a non-empty slot is offered for recovery.
//
// # Key Types
//
//   - BackupStore: open/read/write/clear the slot
//   - ErrNoBackup: returned by Read when the slot is empty
//
// # Usage
//
//	store, err := storage.NewBackupStore(dbPath)
//	defer store.Close()
//	err = store.Write(serialized)
//	payload, err := store.Read()
//
// # Storage Location
//
// The database lives at ~/.trainingset-editor/backup.db by default.
package storage
