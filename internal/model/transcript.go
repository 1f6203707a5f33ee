// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"
)

// MaxMessages is the maximum number of messages to keep in a transcript.
// When exceeded, old messages are pruned to prevent unbounded memory growth.
const MaxMessages = 1000

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered chat turns for one session.
type Transcript struct {
	// SessionID scopes which conversation the backend associates with each
	// request. Opaque to the client.
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []*Message `json:"messages"`
}

// NewTranscript creates an empty transcript for the given session.
func NewTranscript(sessionID string) *Transcript {
	now := time.Now()
	return &Transcript{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Add appends a message to the transcript.
func (t *Transcript) Add(msg *Message) {
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = time.Now()
	t.prune()
}

// AddUserMessage creates and appends a user message.
func (t *Transcript) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	t.Add(msg)
	return msg
}

// AddAssistantMessage creates and appends an assistant message.
func (t *Transcript) AddAssistantMessage(content string) *Message {
	msg := NewAssistantMessage(content)
	t.Add(msg)
	return msg
}

// AddErrorMessage creates and appends an assistant-role error message.
func (t *Transcript) AddErrorMessage(content string) *Message {
	msg := NewErrorMessage(content)
	t.Add(msg)
	return msg
}

// AddSystemMessage creates and appends a system message.
func (t *Transcript) AddSystemMessage(content string) *Message {
	msg := NewSystemMessage(content)
	t.Add(msg)
	return msg
}

// Last returns the most recent message, or nil if empty.
func (t *Transcript) Last() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[len(t.Messages)-1]
}

// LastUserMessage returns the most recent user message, or nil.
func (t *Transcript) LastUserMessage() *Message {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		if t.Messages[i].Role == RoleUser {
			return t.Messages[i]
		}
	}
	return nil
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.Messages)
}

// IsEmpty returns true if the transcript has no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.Messages) == 0
}

// Clear removes all messages. This is the only way messages leave the
// transcript besides pruning; it corresponds to an explicit user action.
func (t *Transcript) Clear() {
	t.Messages = make([]*Message, 0)
	t.UpdatedAt = time.Now()
}

// Title returns a short title derived from the first user message.
func (t *Transcript) Title() string {
	for _, msg := range t.Messages {
		if msg.Role == RoleUser {
			return msg.Preview(50)
		}
	}
	return "New conversation"
}

// prune drops the oldest messages when the transcript exceeds MaxMessages.
func (t *Transcript) prune() {
	if len(t.Messages) <= MaxMessages {
		return
	}
	excess := len(t.Messages) - MaxMessages
	t.Messages = t.Messages[excess:]
}
