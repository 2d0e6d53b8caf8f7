// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for the editor.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.trainingset-editor/config.toml
//   - ~/.trainingset-editor/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/treehole-hk/openai-trainingset-editor/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete editor configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`

	// Backup configuration
	Backup BackupConfig `toml:"backup" json:"backup"`

	// Watch configuration
	Watch WatchConfig `toml:"watch" json:"watch"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ExportConfig contains export output configuration.
type ExportConfig struct {
	// OutputDir is the directory export files are written to.
	// Empty means the current working directory.
	OutputDir string `toml:"output_dir" json:"output_dir"`
}

// BackupConfig contains durable backup configuration.
type BackupConfig struct {
	// Enabled controls whether the backup slot is written on save
	Enabled bool `toml:"enabled" json:"enabled"`
	// DBPath is the path to the backup database (empty = default
	// ~/.trainingset-editor/backup.db)
	DBPath string `toml:"db_path" json:"db_path"`
}

// WatchConfig contains source-file watch configuration.
type WatchConfig struct {
	// Enabled controls whether the loaded file is watched for external edits
	Enabled bool `toml:"enabled" json:"enabled"`
	// DebounceMS is the minimum interval between change notifications
	DebounceMS int `toml:"debounce_ms" json:"debounce_ms"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ConfirmOnQuit requires confirmation before quitting with unsaved changes
	ConfirmOnQuit bool `toml:"confirm_on_quit" json:"confirm_on_quit"`
	// ShowStats displays role counts in the conversation list
	ShowStats bool `toml:"show_stats" json:"show_stats"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Export: ExportConfig{
			OutputDir: "",
		},

		Backup: BackupConfig{
			Enabled: true,
			DBPath:  "",
		},

		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 500,
		},

		UI: UIConfig{
			Theme:         "dark",
			ConfirmOnQuit: true,
			ShowStats:     true,
			CompactMode:   false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the editor configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".trainingset-editor"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				cfg.ApplyEnvOverrides()
				if err := cfg.Validate(); err != nil {
					return nil, fmt.Errorf("invalid config: %w", err)
				}
				return cfg, nil
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = defaults.Watch.DebounceMS
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Recognized variables:
//   - TSEDIT_EXPORT_DIR: export output directory
//   - TSEDIT_BACKUP_DB: backup database path
//   - TSEDIT_BACKUP_DISABLED: "1"/"true" disables the backup slot
//   - TSEDIT_WATCH_DISABLED: "1"/"true" disables file watching
//   - TSEDIT_THEME: UI theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TSEDIT_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("TSEDIT_BACKUP_DB"); v != "" {
		c.Backup.DBPath = v
	}
	if envBool("TSEDIT_BACKUP_DISABLED") {
		c.Backup.Enabled = false
	}
	if envBool("TSEDIT_WATCH_DISABLED") {
		c.Watch.Enabled = false
	}
	if v := os.Getenv("TSEDIT_THEME"); v != "" {
		c.UI.Theme = v
	}
}

func envBool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("invalid theme %q (valid: dark, light, auto)", c.UI.Theme)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch debounce_ms must be non-negative, got %d", c.Watch.DebounceMS)
	}
	return nil
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to the TOML config file.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
