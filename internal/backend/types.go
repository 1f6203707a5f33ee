// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// IndexDocumentRequest is the body for POST /api/index-document.
type IndexDocumentRequest struct {
	FilePath string `json:"file_path"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	IndexedDocuments int    `json:"indexed_documents"`
}

// ChatResponse is the body of POST /api/chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// IndexDocumentResponse is the body of POST /api/index-document.
type IndexDocumentResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
}

// DocumentInfo describes one indexed document.
type DocumentInfo struct {
	FilePath   string `json:"file_path"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
}

// ListDocumentsResponse is the body of GET /api/indexed-documents.
type ListDocumentsResponse struct {
	Count     int            `json:"count"`
	Documents []DocumentInfo `json:"documents"`
}

// ClearSessionResponse is the body of POST /api/clear-session.
type ClearSessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SessionInfo is the body of GET /api/session-info. The backend returns
// {"exists": false} for unknown sessions and the bookkeeping fields for
// known ones.
type SessionInfo struct {
	Exists       bool   `json:"exists"`
	CreatedAt    string `json:"created_at"`
	MessageCount int    `json:"message_count"`
}

// apiError is the FastAPI-style error body returned on non-2xx statuses.
type apiError struct {
	Detail string `json:"detail"`
}
