// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning = &ClientError{Type: ErrTypeNotRunning, Message: "backend is not running"}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotRunning checks if an error indicates the backend is not running.
func IsNotRunning(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotRunning
	}
	return errors.Is(err, ErrNotRunning)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API base URL (default: http://127.0.0.1:8765)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows
	BaseURL string

	// HealthTimeout bounds the /health probe (default: 2s). Health checks
	// must fail fast so the liveness indicator stays honest.
	HealthTimeout time.Duration

	// ChatTimeout bounds chat and document calls (default: 0 = unbounded).
	// Agent answers can legitimately take minutes; callers that want a
	// bound pass one via context or set this explicitly.
	ChatTimeout time.Duration

	// Executable overrides the backend executable path for EnsureRunning.
	// Empty means search PATH and common install locations.
	Executable string

	// StartupAttempts is the readiness-poll ceiling after spawning the
	// backend process (default: 30).
	StartupAttempts int

	// StartupDelay is the spacing between readiness polls (default: 1s).
	StartupDelay time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://127.0.0.1:8765",
		HealthTimeout:   2 * time.Second,
		ChatTimeout:     0,
		StartupAttempts: 30,
		StartupDelay:    1 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the file-search backend API.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := backend.NewClient()
//	if err := client.EnsureRunning(ctx); err != nil {
//	    log.Warn("backend not available", "error", err)
//	}
//	resp, err := client.Chat(ctx, "find budget.xlsx", "default")
type Client struct {
	config *ClientConfig

	// Separate HTTP clients: the health probe carries a short timeout, chat
	// and document calls carry the (possibly unbounded) chat timeout.
	healthClient *http.Client
	chatClient   *http.Client

	// Spawned process state, set by EnsureRunning (platform-specific).
	proc *backendProcess
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8765"
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 2 * time.Second
	}
	if config.StartupAttempts == 0 {
		config.StartupAttempts = 30
	}
	if config.StartupDelay == 0 {
		config.StartupDelay = 1 * time.Second
	}

	return &Client{
		config: config,
		healthClient: &http.Client{
			Timeout: config.HealthTimeout,
		},
		chatClient: &http.Client{
			Timeout: config.ChatTimeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// DocsURL returns the URL of the backend's API documentation page.
// The page is opened in an external browser, never parsed.
func (c *Client) DocsURL() string {
	return c.config.BaseURL + "/docs"
}

// =============================================================================
// HEALTH
// =============================================================================

// Health fetches the backend health snapshot.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode health response", Cause: err}
	}

	return &result, nil
}

// CheckRunning verifies that the backend is reachable and healthy.
func (c *Client) CheckRunning(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one user message scoped to sessionID and returns the agent's
// reply. The call uses the chat timeout (unbounded by default); pass a
// context with a deadline to bound it per call.
func (c *Client) Chat(ctx context.Context, message, sessionID string) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Message:   message,
		SessionID: sessionID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.chatClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "chat request failed")
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode chat response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// IndexedDocuments fetches the metadata of all indexed documents.
func (c *Client) IndexedDocuments(ctx context.Context) (*ListDocumentsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/indexed-documents", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.chatClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "failed to list indexed documents")
	}

	var result ListDocumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode document list", Cause: err}
	}

	return &result, nil
}

// IndexDocument asks the backend to index the file at path.
func (c *Client) IndexDocument(ctx context.Context, path string) (*IndexDocumentResponse, error) {
	reqBody := IndexDocumentRequest{FilePath: path}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/index-document", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.chatClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "index request failed")
	}

	var result IndexDocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode index response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// SESSIONS
// =============================================================================

// ClearSession drops the backend's history for sessionID.
func (c *Client) ClearSession(ctx context.Context, sessionID string) (*ClearSessionResponse, error) {
	u := c.config.BaseURL + "/api/clear-session?session_id=" + url.QueryEscape(sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.chatClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "clear-session request failed")
	}

	var result ClearSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode clear-session response", Cause: err}
	}

	return &result, nil
}

// SessionInfo fetches the backend's bookkeeping for sessionID.
func (c *Client) SessionInfo(ctx context.Context, sessionID string) (*SessionInfo, error) {
	u := c.config.BaseURL + "/api/session-info?session_id=" + url.QueryEscape(sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.chatClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "session-info request failed")
	}

	var result SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode session info", Cause: err}
	}
	// Known sessions carry bookkeeping fields but no "exists" flag.
	if result.CreatedAt != "" {
		result.Exists = true
	}

	return &result, nil
}

// =============================================================================
// PROCESS MANAGEMENT
// =============================================================================

// EnsureRunning checks if the backend is reachable and spawns the backend
// process if not, waiting for it to become ready. Returns nil if the
// backend is (or becomes) healthy.
func (c *Client) EnsureRunning(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	err := c.CheckRunning(checkCtx)
	cancel()
	if err == nil {
		return nil
	}
	return c.startBackendProcess(ctx)
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeError builds a ClientError from a non-2xx response, preferring the
// backend's own error detail when the body parses.
func (c *Client) decodeError(resp *http.Response, fallback string) error {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Detail != "" {
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: apiErr.Detail,
		}
	}
	return &ClientError{
		Type:    ErrTypeInvalidResponse,
		Message: fallback + ": " + resp.Status,
	}
}
