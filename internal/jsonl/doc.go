// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jsonl converts between line-delimited JSON text and the in-memory
// conversation model.
//
// Parsing assigns a fresh ephemeral ID to every message and collects
// per-line errors without aborting; serialization strips the IDs again and
// omits absent preference tags. All fields the parser does not understand
// are carried through both directions verbatim.
//
// # Contract
//
// Serialize is the left inverse of Parse for every field except the
// ephemeral message ID: parse -> serialize reproduces the source's semantic
// content, and serialize -> parse -> serialize is textually idempotent.
//
// # Usage
//
//	convs, errs := jsonl.Parse(text)
//	out := jsonl.Serialize(convs)
package jsonl
