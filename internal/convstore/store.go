// Package convstore holds per-conversation state: the message log, the
// accumulated slot set, the readiness flag, and the last computed plan.
// All operations are keyed by conversation id and are atomic with respect
// to other operations on the same id; operations on different ids never
// contend. The store owns no business logic beyond merge and lookup.
package convstore

import (
	"errors"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// ErrNotFound is returned when a conversation id is unknown.
var ErrNotFound = errors.New("conversation not found")

// Store is the conversation persistence interface. Implementations must
// guarantee per-id mutual exclusion; no cross-id ordering is required.
type Store interface {
	// GetOrCreate returns a snapshot of the conversation, creating it on
	// first use.
	GetOrCreate(id string) (models.Conversation, error)
	// Get returns a snapshot of an existing conversation.
	Get(id string) (models.Conversation, error)
	// Update runs fn against the conversation under its per-id lock,
	// creating the conversation if needed. Changes made by fn are
	// persisted when fn returns nil.
	Update(id string, fn func(*models.Conversation) error) error
	// AppendMessage appends to the conversation's message log.
	AppendMessage(id string, role models.Role, text string) error
	// MergeSlots applies a slot delta under the sticky-merge invariant.
	MergeSlots(id string, delta models.SlotSet) error
	// SetPlan replaces the conversation's plan.
	SetPlan(id string, plan *models.Plan) error
	// Clear removes all state for the conversation. Eviction timing is a
	// collaborator's decision; the store only exposes the operation.
	Clear(id string) error
	// Close releases any resources held by the store.
	Close() error
}

// Compile-time verification that both implementations satisfy Store.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*DB)(nil)
)
