// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/filesearch-tui/internal/model"
)

// Sessions interleave in real use: several transcripts under different ids
// land in the same archive and must come back separated.
func TestArchive_MultipleSessions(t *testing.T) {
	a := openTestArchive(t, 0)
	ctx := context.Background()

	defaultID, err := a.Save(ctx, sampleTranscript("default"))
	require.NoError(t, err)

	review := model.NewTranscript("review-2026")
	review.AddUserMessage("summarize the review notes")
	review.AddAssistantMessage("Three findings, two resolved.")
	reviewID, err := a.Save(ctx, review)
	require.NoError(t, err)

	got, err := a.Get(ctx, reviewID)
	require.NoError(t, err)
	assert.Equal(t, "review-2026", got.SessionID)
	assert.Equal(t, 2, got.Len())

	got, err = a.Get(ctx, defaultID)
	require.NoError(t, err)
	assert.Equal(t, "default", got.SessionID)

	list, err := a.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "review-2026", list[0].SessionID, "newest conversation first")
}

func TestArchive_TimestampsSurviveRoundTrip(t *testing.T) {
	a := openTestArchive(t, 0)
	ctx := context.Background()

	tr := sampleTranscript("default")
	id, err := a.Save(ctx, tr)
	require.NoError(t, err)

	got, err := a.Get(ctx, id)
	require.NoError(t, err)

	// Stored at second precision
	assert.Equal(t, tr.CreatedAt.Unix(), got.CreatedAt.Unix())
	assert.Equal(t, tr.UpdatedAt.Unix(), got.UpdatedAt.Unix())
	assert.Equal(t, tr.Messages[0].Timestamp.Unix(), got.Messages[0].Timestamp.Unix())
}
