// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the in-memory editing session.
//
// The Manager holds the document, the selected conversation, the raw-view
// state used for unrecognized input, and the durable backup slot. All
// navigation away from unsaved changes goes through a confirm/cancel guard.
//
// # Key Types
//
//   - Manager: mutex-guarded session state
//
// # Usage
//
//	store, _ := storage.NewBackupStore(dbPath)
//	mgr := session.NewManager(store)
//	if err := mgr.LoadFile("data.jsonl"); err != nil {
//		return err
//	}
//	if mgr.RequestSelect(2) {
//		// show the unsaved-changes dialog, then
//		mgr.ConfirmPending() // or mgr.CancelPending()
//	}
package session
