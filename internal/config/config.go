// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/filesearch-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	// Version of the config schema
	Version string `toml:"version" json:"version"`

	// API configuration (backend endpoint and process spawning)
	API APIConfig `toml:"api" json:"api"`

	// Session configuration
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// History configuration (local conversation archive)
	History HistoryConfig `toml:"history" json:"history"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// APIConfig contains backend endpoint configuration.
type APIConfig struct {
	// URL is the backend base URL. Uses an explicit IPv4 loopback address by
	// default instead of localhost to avoid IPv6 resolution issues on Windows.
	URL string `toml:"url" json:"url"`
	// HealthIntervalSecs is the spacing between liveness probes
	HealthIntervalSecs int `toml:"health_interval_secs" json:"health_interval_secs"`
	// HealthTimeoutSecs bounds the health probe
	HealthTimeoutSecs int `toml:"health_timeout_secs" json:"health_timeout_secs"`
	// ChatTimeoutSecs bounds chat calls (0 = unbounded)
	ChatTimeoutSecs int `toml:"chat_timeout_secs" json:"chat_timeout_secs"`
	// Executable overrides the backend binary path for auto-start
	// (empty = search PATH and common install locations)
	Executable string `toml:"executable" json:"executable"`
	// StartupAttempts is the readiness-poll ceiling after spawning the backend
	StartupAttempts int `toml:"startup_attempts" json:"startup_attempts"`
	// StartupDelaySecs is the spacing between readiness polls
	StartupDelaySecs int `toml:"startup_delay_secs" json:"startup_delay_secs"`
	// AutoStart spawns the backend when it is not already running
	AutoStart bool `toml:"auto_start" json:"auto_start"`
	// StopOnExit terminates a backend we spawned when the client exits
	StopOnExit bool `toml:"stop_on_exit" json:"stop_on_exit"`
}

// SessionConfig contains chat session configuration.
type SessionConfig struct {
	// ID is the active session identifier, sent with every chat turn
	ID string `toml:"id" json:"id"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode uses a more compact layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowDocuments shows the indexed-documents panel by default
	ShowDocuments bool `toml:"show_documents" json:"show_documents"`
	// Markdown renders agent replies as markdown
	Markdown bool `toml:"markdown" json:"markdown"`
}

// HistoryConfig contains local conversation archive configuration.
type HistoryConfig struct {
	// Enabled controls whether finished conversations are archived locally
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the archive database path (empty = ~/.filesearch/history.db)
	Path string `toml:"path" json:"path"`
	// MaxConversations caps the archive; oldest conversations are pruned
	MaxConversations int `toml:"max_conversations" json:"max_conversations"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `toml:"level" json:"level"`
	// Path is the log file path (empty = ~/.filesearch/filesearch.log)
	Path string `toml:"path" json:"path"`
}

// legacyConfig mirrors the flat JSON file written by earlier releases.
type legacyConfig struct {
	APIURL    string `json:"apiUrl"`
	SessionID string `json:"sessionId"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			URL:                "http://127.0.0.1:8765",
			HealthIntervalSecs: 10,
			HealthTimeoutSecs:  2,
			ChatTimeoutSecs:    0, // unbounded
			StartupAttempts:    30,
			StartupDelaySecs:   1,
			AutoStart:          true,
			StopOnExit:         false,
		},

		Session: SessionConfig{
			ID: "default",
		},

		UI: UIConfig{
			Theme:         "dark",
			CompactMode:   false,
			ShowDocuments: true,
			Markdown:      true,
		},

		History: HistoryConfig{
			Enabled:          true,
			MaxConversations: 200,
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the client configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".filesearch"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LegacyConfigPath returns the path to the legacy flat JSON config file.
func LegacyConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filesearch-config.json"), nil
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
// Tries TOML first, then the legacy JSON file, and falls back to defaults.
// Environment overrides are applied last, then defaults and validation.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	legacyPath, err := LegacyConfigPath()
	if err == nil {
		if _, statErr := os.Stat(legacyPath); statErr == nil {
			if err := loadLegacy(cfg, legacyPath); err != nil {
				loadErr = fmt.Errorf("failed to load legacy config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finishLoad applies env overrides, defaults and validation in order.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// loadLegacy loads the flat apiUrl/sessionId JSON file written by earlier
// releases and folds it into cfg.
func loadLegacy(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read legacy config: %w", err)
	}
	var legacy legacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("failed to decode legacy config: %w", err)
	}
	if legacy.APIURL != "" {
		cfg.API.URL = legacy.APIURL
	}
	if legacy.SessionID != "" {
		cfg.Session.ID = legacy.SessionID
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. JSON paths are treated as legacy files; everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := loadLegacy(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load legacy config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# filesearch configuration file\n")
	buf.WriteString("# Generated by filesearch - edit with care\n")
	buf.WriteString("\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Atomic write with fsync prevents a half-written config on crash
	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveLegacy writes the flat JSON file understood by earlier releases.
// Kept so downgrades keep the user's endpoint and session.
func SaveLegacy(cfg *Config) error {
	path, err := LegacyConfigPath()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(legacyConfig{
		APIURL:    cfg.API.URL,
		SessionID: cfg.Session.ID,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode legacy config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write legacy config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Validate API URL
	if c.API.URL != "" {
		u, err := url.Parse(c.API.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "api.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.API.URL),
			})
		}
	}

	if c.API.HealthIntervalSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.health_interval_secs",
			Message: "must be non-negative",
		})
	}
	if c.API.HealthTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.health_timeout_secs",
			Message: "must be non-negative",
		})
	}
	if c.API.ChatTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.chat_timeout_secs",
			Message: "must be non-negative",
		})
	}
	if c.API.StartupAttempts < 0 || c.API.StartupAttempts > 300 {
		errs = append(errs, ValidationError{
			Field:   "api.startup_attempts",
			Message: fmt.Sprintf("must be 0-300, got %d", c.API.StartupAttempts),
		})
	}

	// Validate session id
	if strings.TrimSpace(c.Session.ID) == "" {
		errs = append(errs, ValidationError{
			Field:   "session.id",
			Message: "must not be empty",
		})
	}

	// Validate UI theme
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// Validate history cap
	if c.History.MaxConversations < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.max_conversations",
			Message: "must be non-negative",
		})
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.API.URL == "" {
		c.API.URL = defaults.API.URL
	}
	if c.API.HealthIntervalSecs == 0 {
		c.API.HealthIntervalSecs = defaults.API.HealthIntervalSecs
	}
	if c.API.HealthTimeoutSecs == 0 {
		c.API.HealthTimeoutSecs = defaults.API.HealthTimeoutSecs
	}
	if c.API.StartupAttempts == 0 {
		c.API.StartupAttempts = defaults.API.StartupAttempts
	}
	if c.API.StartupDelaySecs == 0 {
		c.API.StartupDelaySecs = defaults.API.StartupDelaySecs
	}

	if c.Session.ID == "" {
		c.Session.ID = defaults.Session.ID
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.History.MaxConversations == 0 {
		c.History.MaxConversations = defaults.History.MaxConversations
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - FILESEARCH_API_URL: overrides api.url
//   - FILESEARCH_SESSION_ID: overrides session.id
//   - FILESEARCH_BACKEND: overrides api.executable
//   - FILESEARCH_NO_AUTOSTART: set to "1" or "true" to disable auto-start
//   - FILESEARCH_THEME: overrides ui.theme
//   - FILESEARCH_LOG_LEVEL: overrides logging.level
//   - FILESEARCH_LOG_FILE: overrides logging.path
func (c *Config) ApplyEnvOverrides() {
	if apiURL := os.Getenv("FILESEARCH_API_URL"); apiURL != "" {
		c.API.URL = apiURL
	}

	if sessionID := os.Getenv("FILESEARCH_SESSION_ID"); sessionID != "" {
		c.Session.ID = sessionID
	}

	if executable := os.Getenv("FILESEARCH_BACKEND"); executable != "" {
		c.API.Executable = executable
	}

	if noStart := os.Getenv("FILESEARCH_NO_AUTOSTART"); noStart != "" {
		if noStart == "1" || strings.ToLower(noStart) == "true" {
			c.API.AutoStart = false
		}
	}

	if theme := os.Getenv("FILESEARCH_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if level := os.Getenv("FILESEARCH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if logFile := os.Getenv("FILESEARCH_LOG_FILE"); logFile != "" {
		c.Logging.Path = logFile
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.url").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "api.url").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	// Common initialisms
	switch result.String() {
	case "Url":
		return "URL"
	case "Id":
		return "ID"
	case "Api":
		return "API"
	case "Ui":
		return "UI"
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type
// conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"api.url",
		"api.health_timeout_secs",
		"api.chat_timeout_secs",
		"api.executable",
		"api.startup_attempts",
		"api.startup_delay_secs",
		"api.auto_start",
		"api.stop_on_exit",
		"session.id",
		"ui.theme",
		"ui.compact_mode",
		"ui.show_documents",
		"ui.markdown",
		"history.enabled",
		"history.path",
		"history.max_conversations",
		"logging.level",
		"logging.path",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// HistoryPath returns the effective history database path.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// LogPath returns the effective log file path.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filesearch.log"), nil
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
			cfg = Default()
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
	// Consume the lazy load so a later Global() does not clobber this
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
