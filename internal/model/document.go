// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// DocumentSummary is the client-side view of one indexed document as
// reported by the backend. The list is replaced wholesale on each refresh;
// entries are never individually mutated.
type DocumentSummary struct {
	FilePath   string `json:"file_path"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
}

// QueryTemplate returns the query pre-filled into the input when the user
// selects this document. UI convenience only; no backend effect.
func (d DocumentSummary) QueryTemplate() string {
	return "Summarize " + d.Filename
}
