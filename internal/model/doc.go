// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for training-set records.
//
// A training file holds one Conversation per line; each Conversation holds
// an ordered list of role-tagged Messages plus arbitrary pass-through fields
// from the source file. Messages carry an ephemeral ID for addressing in the
// editor; the ID never appears in serialized output.
//
// # Key Types
//
//   - Conversation: one training/preference record
//   - Message: one turn with a role and text content
//   - Role: speaker category ("system", "user", "assistant", or anything else)
//   - Preference: chosen/rejected tag for DPO export
//
// # Usage
//
// Create a seeded conversation:
//
//	conv := model.NewSeededConversation()
//
// Derive a list label:
//
//	label := conv.Subject()
package model
