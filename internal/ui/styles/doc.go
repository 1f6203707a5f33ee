// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the filesearch TUI.
//
// All colors use Lip Gloss AdaptiveColor so the same theme works on light
// and dark terminals; termenv detects the terminal's actual capabilities.
package styles
