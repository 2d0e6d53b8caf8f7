// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoBackup is returned by Read when the slot is empty.
	ErrNoBackup = errors.New("no backup present")
)

// backupSlot names the single slot. A slot column exists so a future
// versioned layout would not need a migration, but only this one is used.
const backupSlot = "editor_backup"

// =============================================================================
// BACKUP STORE
// =============================================================================

// BackupStore is the single-slot durable backup.
type BackupStore struct {
	db   *sql.DB
	path string
}

// NewBackupStore opens (or creates) the backup database at dbPath.
func NewBackupStore(dbPath string) (*BackupStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup database: %w", err)
	}

	// SQLite supports a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS backup (
		slot       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backup table: %w", err)
	}

	return &BackupStore{db: db, path: dbPath}, nil
}

// DefaultPath returns the default backup database location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".trainingset-editor", "backup.db"), nil
}

// Write overwrites the slot with the given payload.
func (s *BackupStore) Write(payload string) error {
	_, err := s.db.Exec(
		`INSERT INTO backup (slot, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		backupSlot, payload, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Read returns the slot's payload, or ErrNoBackup when the slot is empty.
func (s *BackupStore) Read() (string, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM backup WHERE slot = ?`, backupSlot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoBackup
	}
	if err != nil {
		return "", fmt.Errorf("failed to read backup: %w", err)
	}
	if payload == "" {
		return "", ErrNoBackup
	}
	return payload, nil
}

// UpdatedAt returns when the slot was last written.
func (s *BackupStore) UpdatedAt() (time.Time, error) {
	var stamp string
	err := s.db.QueryRow(
		`SELECT updated_at FROM backup WHERE slot = ?`, backupSlot,
	).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoBackup
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read backup timestamp: %w", err)
	}
	return time.Parse(time.RFC3339, stamp)
}

// Clear removes the slot. Clearing an already empty slot is not an error.
func (s *BackupStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM backup WHERE slot = ?`, backupSlot); err != nil {
		return fmt.Errorf("failed to clear backup: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *BackupStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *BackupStore) Path() string {
	return s.path
}
