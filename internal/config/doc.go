// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates editor configuration.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: built-in defaults, a config file (~/.trainingset-editor/config.toml,
// falling back to config.json), and TSEDIT_* environment variables.
//
// # Key Types
//
//   - Config: the complete editor configuration
//   - ExportConfig: export output directory
//   - BackupConfig: backup slot location and enable flag
//   - WatchConfig: source-file watch behavior
//   - UIConfig: theme and layout preferences
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if cfg.Watch.Enabled {
//		// start the file watcher
//	}
package config
