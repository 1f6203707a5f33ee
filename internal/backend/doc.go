// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for communicating with the local
// file-search agent service.
//
// The backend runs as a separate process bound to a loopback address
// (default http://127.0.0.1:8765) and owns all agent reasoning, file
// indexing and conversational state. This package is a thin typed client
// over its JSON API:
//
//   - GET  /health                 liveness probe with version + doc count
//   - POST /api/chat               one chat turn, scoped by session id
//   - GET  /api/indexed-documents  indexed document metadata
//   - POST /api/index-document     index a file for querying
//   - POST /api/clear-session      drop server-side session history
//   - GET  /api/session-info       server-side session bookkeeping
//   - GET  /docs                   API docs, opened externally, never parsed
//
// The health probe uses a short bounded timeout; chat and document calls use
// a separate, configurable timeout that defaults to unbounded. That
// asymmetry is deliberate: a health check must fail fast to keep the status
// indicator honest, while an agent answer can legitimately take a long time.
//
// The package can also spawn the backend process itself and wait for it to
// become ready (see EnsureRunning); the start logic is platform-specific.
package backend
