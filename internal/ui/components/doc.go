// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the filesearch
// TUI: the header with the backend status indicator, the indexed-documents
// panel, the status bar and the code block renderer.
//
// Components are plain view types: they hold display state, render with
// View(), and never talk to the backend themselves.
package components
