// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if !cfg.Backup.Enabled {
		t.Error("backup should be enabled by default")
	}
	if cfg.Watch.DebounceMS <= 0 {
		t.Error("watch debounce should have a positive default")
	}
}

func TestValidateRejectsBadTheme(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "solarized"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1.0.0"

[export]
output_dir = "/tmp/exports"

[watch]
enabled = false
debounce_ms = 250

[ui]
theme = "light"
confirm_on_quit = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Export.OutputDir != "/tmp/exports" {
		t.Errorf("OutputDir = %q", cfg.Export.OutputDir)
	}
	if cfg.Watch.Enabled {
		t.Error("watch should be disabled")
	}
	if cfg.Watch.DebounceMS != 250 {
		t.Errorf("DebounceMS = %d, want 250", cfg.Watch.DebounceMS)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"ui":{"theme":"auto"},"backup":{"enabled":true,"db_path":"/tmp/b.db"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("Theme = %q, want auto", cfg.UI.Theme)
	}
	if cfg.Backup.DBPath != "/tmp/b.db" {
		t.Errorf("DBPath = %q", cfg.Backup.DBPath)
	}
	// Missing fields fall back to defaults.
	if cfg.Watch.DebounceMS != Default().Watch.DebounceMS {
		t.Errorf("DebounceMS = %d, want default", cfg.Watch.DebounceMS)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TSEDIT_EXPORT_DIR", "/data/out")
	t.Setenv("TSEDIT_WATCH_DISABLED", "1")
	t.Setenv("TSEDIT_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Export.OutputDir != "/data/out" {
		t.Errorf("OutputDir = %q", cfg.Export.OutputDir)
	}
	if cfg.Watch.Enabled {
		t.Error("watch should be disabled via env")
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and
// ReloadGlobal() can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
}
