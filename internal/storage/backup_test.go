// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *BackupStore {
	t.Helper()
	store, err := NewBackupStore(filepath.Join(t.TempDir(), "backup.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBackupStore_ReadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Read()
	if !errors.Is(err, ErrNoBackup) {
		t.Errorf("Expected ErrNoBackup, got %v", err)
	}
}

func TestBackupStore_WriteAndRead(t *testing.T) {
	store := newTestStore(t)

	payload := `{"messages":[{"role":"user","content":"hi"}]}`
	if err := store.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestBackupStore_SingleSlotOverwrite(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("old"); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := store.Write("new"); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "new" {
		t.Errorf("payload = %q, want %q", got, "new")
	}
}

func TestBackupStore_Clear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("payload"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	_, err := store.Read()
	if !errors.Is(err, ErrNoBackup) {
		t.Errorf("Expected ErrNoBackup after clear, got %v", err)
	}

	// Clearing an empty slot is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear of empty slot failed: %v", err)
	}
}

func TestBackupStore_UpdatedAt(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.UpdatedAt(); !errors.Is(err, ErrNoBackup) {
		t.Errorf("Expected ErrNoBackup, got %v", err)
	}

	if err := store.Write("x"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	stamp, err := store.UpdatedAt()
	if err != nil {
		t.Fatalf("UpdatedAt failed: %v", err)
	}
	if stamp.IsZero() {
		t.Error("UpdatedAt returned zero time")
	}
}

func TestBackupStore_ReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "backup.db")

	store, err := NewBackupStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Write("survives"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	store.Close()

	reopened, err := NewBackupStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "survives" {
		t.Errorf("payload = %q, want %q", got, "survives")
	}
}
