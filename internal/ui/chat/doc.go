// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive chat view.
//
// The view is a Bubble Tea model wired to the file-search backend: a
// scrollback viewport for the conversation, a text input for queries, a
// header showing backend liveness, an optional panel listing the indexed
// documents, and a status bar with key hints.
//
// Backend calls never run on the update loop. Every request is issued as a
// tea.Cmd and its outcome comes back as a message; failures are absorbed
// into conversation turns or stale markers rather than surfaced as UI
// errors.
package chat
