// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/filesearch-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound        = errors.New("conversation not found")
	ErrEmptyTranscript = errors.New("transcript has no messages")
)

// =============================================================================
// TYPES
// =============================================================================

// ConversationSummary is one row of the archive listing.
type ConversationSummary struct {
	ID           int64
	SessionID    string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// Archive stores finished conversations in a local SQLite database.
// Safe for concurrent use; SQLite writes are serialized by the single
// connection.
type Archive struct {
	db      *sql.DB
	maxConv int
}

// =============================================================================
// OPEN/CLOSE
// =============================================================================

// Open opens (creating if needed) the archive at path. maxConversations
// caps the archive size; 0 means unlimited.
func Open(path string, maxConversations int) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(initMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Archive{db: db, maxConv: maxConversations}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// =============================================================================
// SAVE
// =============================================================================

// Save archives a transcript and returns its conversation id.
// Empty transcripts are rejected; system-only transcripts are archived as-is.
func (a *Archive) Save(ctx context.Context, tr *model.Transcript) (int64, error) {
	if tr == nil || tr.IsEmpty() {
		return 0, ErrEmptyTranscript
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (session_id, title, created_at, updated_at, message_count)
		 VALUES (?, ?, ?, ?, ?)`,
		tr.SessionID, tr.Title(), tr.CreatedAt.Unix(), tr.UpdatedAt.Unix(), tr.Len())
	if err != nil {
		return 0, fmt.Errorf("failed to insert conversation: %w", err)
	}

	convID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get conversation id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (conversation_id, role, content, is_error, created_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare message insert: %w", err)
	}
	defer stmt.Close()

	for _, msg := range tr.Messages {
		isError := 0
		if msg.IsError {
			isError = 1
		}
		if _, err := stmt.ExecContext(ctx,
			convID, string(msg.Role), msg.Content, isError, msg.Timestamp.Unix()); err != nil {
			return 0, fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	if err := a.prune(ctx); err != nil {
		// Pruning failure is not worth failing the save over
		return convID, nil
	}
	return convID, nil
}

// =============================================================================
// QUERY
// =============================================================================

// List returns archive summaries, newest first. limit <= 0 means all.
func (a *Archive) List(ctx context.Context, limit int) ([]ConversationSummary, error) {
	query := `SELECT id, session_id, title, created_at, updated_at, message_count
	          FROM conversations ORDER BY updated_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var out []ConversationSummary
	for rows.Next() {
		var s ConversationSummary
		var created, updated int64
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Title, &created, &updated, &s.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		s.CreatedAt = time.Unix(created, 0)
		s.UpdatedAt = time.Unix(updated, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get loads one archived conversation as a transcript.
func (a *Archive) Get(ctx context.Context, id int64) (*model.Transcript, error) {
	var sessionID string
	var created, updated int64
	err := a.db.QueryRowContext(ctx,
		`SELECT session_id, created_at, updated_at FROM conversations WHERE id = ?`, id).
		Scan(&sessionID, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	tr := model.NewTranscript(sessionID)

	rows, err := a.db.QueryContext(ctx,
		`SELECT role, content, is_error, created_at FROM messages
		 WHERE conversation_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role, content string
		var isError int
		var ts int64
		if err := rows.Scan(&role, &content, &isError, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg := &model.Message{
			Role:      model.Role(role),
			Content:   content,
			IsError:   isError != 0,
			Timestamp: time.Unix(ts, 0),
		}
		tr.Add(msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Restore the archived timestamps after Add has stamped its own
	tr.CreatedAt = time.Unix(created, 0)
	tr.UpdatedAt = time.Unix(updated, 0)
	return tr, nil
}

// Delete removes one archived conversation and its messages.
func (a *Archive) Delete(ctx context.Context, id int64) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of archived conversations.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&n)
	return n, err
}

// prune removes the oldest conversations above the configured cap.
func (a *Archive) prune(ctx context.Context) error {
	if a.maxConv <= 0 {
		return nil
	}
	_, err := a.db.ExecContext(ctx,
		`DELETE FROM conversations WHERE id NOT IN (
		    SELECT id FROM conversations ORDER BY updated_at DESC, id DESC LIMIT ?
		 )`, a.maxConv)
	return err
}
