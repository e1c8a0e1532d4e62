package convstore

import (
	"sync"
	"time"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Memory is the in-memory Store. Each conversation carries its own mutex,
// so operations on unrelated ids proceed without contention; the outer
// lock only guards the id map.
type Memory struct {
	mu    sync.RWMutex
	convs map[string]*memEntry
}

type memEntry struct {
	mu   sync.Mutex
	conv *models.Conversation
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{convs: make(map[string]*memEntry)}
}

// entry returns the entry for id, creating it if needed.
func (m *Memory) entry(id string) *memEntry {
	m.mu.RLock()
	e, ok := m.convs[id]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.convs[id]; ok {
		return e
	}
	e = &memEntry{conv: &models.Conversation{ID: id, CreatedAt: time.Now()}}
	m.convs[id] = e
	return e
}

// GetOrCreate returns a snapshot of the conversation, creating it on first use.
func (m *Memory) GetOrCreate(id string) (models.Conversation, error) {
	e := m.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.conv), nil
}

// Get returns a snapshot of an existing conversation.
func (m *Memory) Get(id string) (models.Conversation, error) {
	m.mu.RLock()
	e, ok := m.convs[id]
	m.mu.RUnlock()
	if !ok {
		return models.Conversation{}, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.conv), nil
}

// Update runs fn against the conversation under its per-id lock.
func (m *Memory) Update(id string, fn func(*models.Conversation) error) error {
	e := m.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.conv)
}

// AppendMessage appends to the conversation's message log.
func (m *Memory) AppendMessage(id string, role models.Role, text string) error {
	return m.Update(id, func(c *models.Conversation) error {
		appendMessage(c, role, text)
		return nil
	})
}

// MergeSlots applies a slot delta under the sticky-merge invariant.
func (m *Memory) MergeSlots(id string, delta models.SlotSet) error {
	return m.Update(id, func(c *models.Conversation) error {
		c.Slots.Merge(delta)
		return nil
	})
}

// SetPlan replaces the conversation's plan.
func (m *Memory) SetPlan(id string, plan *models.Plan) error {
	return m.Update(id, func(c *models.Conversation) error {
		c.Plan = plan
		return nil
	})
}

// Clear removes all state for the conversation.
func (m *Memory) Clear(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.convs, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }

// Count returns the number of live conversations.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.convs)
}

// appendMessage appends a message with the next sequence number.
func appendMessage(c *models.Conversation, role models.Role, text string) {
	c.Messages = append(c.Messages, models.Message{
		Role: role,
		Text: text,
		Seq:  len(c.Messages) + 1,
		At:   time.Now(),
	})
}

// snapshot deep-copies a conversation so callers never share mutable state
// with the store.
func snapshot(c *models.Conversation) models.Conversation {
	out := *c
	out.Messages = append([]models.Message(nil), c.Messages...)
	out.Slots = c.Slots.Clone()
	if c.Plan != nil {
		plan := *c.Plan
		plan.Items = append([]models.WorkItem(nil), c.Plan.Items...)
		out.Plan = &plan
	}
	return out
}
