// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document holds the mutable editing state for a loaded training
// file: the conversation sequence plus the dirty set that drives the
// unsaved-changes warning.
//
// The Document is the single aggregate root. Every structural edit goes
// through one of its methods so the conversation list, the preference tags
// and the dirty set can never drift apart. Operations referencing a missing
// index or message ID are silent no-ops, not errors - the UI may race a
// delete against an edit and the later operation simply does nothing.
//
// # Key Operations
//
//   - EditMessageContent, InsertMessage, DeleteMessage, ReorderMessages
//   - AddConversation, DeleteConversation
//   - UpsertSystemMessage, TogglePreference
//
// All operations run synchronously to completion; the Document is owned by
// a single editing session and needs no locking.
package document
