// Package orchestrator is the facade over the conversational core: it wires
// the conversation store, entity extractor, dialogue policy, task planner,
// and execution engine behind three operations — SubmitMessage, ExecutePlan,
// and ResetConversation.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/hypertask-ai/hypertask/internal/backend"
	"github.com/hypertask-ai/hypertask/internal/convstore"
	"github.com/hypertask-ai/hypertask/internal/engine"
	"github.com/hypertask-ai/hypertask/internal/extract"
	"github.com/hypertask-ai/hypertask/internal/planner"
	"github.com/hypertask-ai/hypertask/internal/policy"
	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Named failures for protocol-level misuse. These are surfaced to the
// caller, never retried.
var (
	// ErrNotReady is returned by ExecutePlan before the dialogue has
	// reached readiness.
	ErrNotReady = errors.New("conversation is not ready to execute")
	// ErrNoPlan is returned by ExecutePlan when no plan exists, e.g.
	// after ResetConversation.
	ErrNoPlan = errors.New("conversation has no plan")
)

// Reply is the result of submitting one message.
type Reply struct {
	ConversationID string
	ResponseText   string
	ReadyToExecute bool
	Action         policy.Action
}

// ExecutionResult is the result of executing a conversation's plan.
type ExecutionResult struct {
	ConversationID string
	Deliverables   []models.Deliverable
	Status         models.ExecutionStatus
	TotalCost      int
	Fee            float64
}

// Orchestrator coordinates the conversational core.
type Orchestrator struct {
	store   convstore.Store
	policy  *policy.Policy
	planner *planner.Planner
	engine  *engine.Engine
	costs   map[models.Capability]int
}

// New wires an Orchestrator. The capability registry supplies the costs
// used by both the policy's menus and the planner's ledger.
func New(store convstore.Store, registry *backend.Registry, policyCfg policy.Config, engineCfg engine.Config) *Orchestrator {
	costs := registry.Costs()
	return &Orchestrator{
		store:   store,
		policy:  policy.New(policyCfg, costs),
		planner: planner.New(costs),
		engine:  engine.New(registry, engineCfg),
		costs:   costs,
	}
}

// SubmitMessage appends a user message to the conversation, extracts
// entities, evaluates the dialogue policy, and returns the assistant's
// reply. An empty conversation id starts a new conversation.
func (o *Orchestrator) SubmitMessage(ctx context.Context, conversationID, text string) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if conversationID == "" {
		conversationID = uuid.New().String()[:8]
	}

	reply := &Reply{ConversationID: conversationID}

	err := o.store.Update(conversationID, func(conv *models.Conversation) error {
		conv.Messages = append(conv.Messages, models.Message{
			Role: models.RoleUser,
			Text: text,
			Seq:  len(conv.Messages) + 1,
		})

		delta := extract.Extract(text, conv.Slots)
		conv.Slots.Merge(delta)

		decision := o.policy.Evaluate(conv, delta)
		reply.Action = decision.Action
		reply.ResponseText = decision.Response

		if decision.Action == policy.ActionPlanReady {
			plan := o.planner.Plan(conv.Slots, text)
			conv.Plan = plan
			conv.Ready = true
			reply.ResponseText = o.policy.RenderPlanReady(plan)
		}
		// Readiness is monotone: a later non-ready decision never clears it.
		reply.ReadyToExecute = conv.Ready

		conv.Messages = append(conv.Messages, models.Message{
			Role: models.RoleAssistant,
			Text: reply.ResponseText,
			Seq:  len(conv.Messages) + 1,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit message: %w", err)
	}

	log.Printf("[orchestrator] conversation %s: action=%s ready=%v", conversationID, reply.Action, reply.ReadyToExecute)
	return reply, nil
}

// ExecutePlan runs the conversation's plan through the execution engine.
// It fails with ErrNotReady before readiness and ErrNoPlan when the
// conversation is unknown or was reset.
func (o *Orchestrator) ExecutePlan(ctx context.Context, conversationID string) (*ExecutionResult, error) {
	conv, err := o.store.Get(conversationID)
	if err != nil {
		if errors.Is(err, convstore.ErrNotFound) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("execute plan: %w", err)
	}
	if !conv.Ready {
		return nil, ErrNotReady
	}
	if conv.Plan == nil {
		return nil, ErrNoPlan
	}

	res := o.engine.Execute(ctx, conv.Plan)
	return &ExecutionResult{
		ConversationID: conversationID,
		Deliverables:   res.Deliverables,
		Status:         res.Status,
		TotalCost:      conv.Plan.TotalCost,
		Fee:            conv.Plan.Fee,
	}, nil
}

// ResetConversation discards all state for the conversation id.
func (o *Orchestrator) ResetConversation(conversationID string) error {
	if err := o.store.Clear(conversationID); err != nil && !errors.Is(err, convstore.ErrNotFound) {
		return fmt.Errorf("reset conversation: %w", err)
	}
	return nil
}

// Conversation returns a snapshot of a conversation's state.
func (o *Orchestrator) Conversation(conversationID string) (*models.Conversation, error) {
	conv, err := o.store.Get(conversationID)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// Costs exposes the per-capability base costs for status surfaces.
func (o *Orchestrator) Costs() map[models.Capability]int {
	return o.costs
}
