// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and
// indexed-document metadata.
//
// A Transcript is the ordered, in-memory sequence of chat turns rendered to
// the user. It is append-only: messages are only removed by an explicit
// Clear, which corresponds to the user's clear-chat or new-session action.
// The backend owns all conversational continuity; the transcript is purely
// a client-side rendering record.
package model
