// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides a local archive of finished conversations.
//
// The archive is a SQLite database (pure Go driver, no cgo) under the
// config directory. It is strictly client-side bookkeeping: the backend
// keeps its own session state, and nothing here is ever sent to it.
// Archiving is best effort; a failed save never interrupts a chat.
package history
