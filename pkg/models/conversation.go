package models

import "time"

// Role identifies who produced a conversation message.
type Role string

const (
	// RoleUser marks a message sent by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the orchestrator.
	RoleAssistant Role = "assistant"
)

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single entry in a conversation's append-only log.
type Message struct {
	// Role is who produced the message.
	Role Role `json:"role"`
	// Text is the message content.
	Text string `json:"text"`
	// Seq is the message's position in the log, starting at 1.
	Seq int `json:"seq"`
	// At is when the message was appended.
	At time.Time `json:"at"`
}

// Conversation is the accumulated state for one conversation id.
// Conversations are single-writer: no concurrent mutation of the same id
// is supported.
type Conversation struct {
	// ID is the opaque conversation identifier.
	ID string `json:"id"`
	// Messages is the append-only message log.
	Messages []Message `json:"messages"`
	// Slots is the current slot set.
	Slots SlotSet `json:"slots"`
	// Ready is true once the dialogue policy declared the conversation
	// plan-ready. It never reverts to false except on reset.
	Ready bool `json:"ready"`
	// Plan is the last computed plan, if any.
	Plan *Plan `json:"plan,omitempty"`
	// CreatedAt is when the conversation was first seen.
	CreatedAt time.Time `json:"created_at"`
}

// UserMessageCount returns the number of user-role messages in the log.
func (c *Conversation) UserMessageCount() int {
	n := 0
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// LastUserMessage returns the most recent user message text, or "".
func (c *Conversation) LastUserMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Text
		}
	}
	return ""
}
