// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the file-search client.
//
// Supports TOML configuration with a legacy JSON fallback, sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.filesearch/config.toml
//   - ~/.filesearch/filesearch-config.json (legacy, apiUrl/sessionId keys)
//   - Built-in defaults
//
// Environment variables (FILESEARCH_*) override file values. A running
// program can additionally watch the TOML file for edits, see Watch.
package config
