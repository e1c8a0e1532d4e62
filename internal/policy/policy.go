// Package policy decides, after each user message, whether the orchestrator
// should ask a clarifying question, keep gathering information, or declare
// the conversation ready for planning. It also renders the natural-language
// response for each outcome.
package policy

import (
	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Action is the dialogue outcome for one evaluated turn.
type Action string

const (
	// ActionAskBrand asks explicitly for the brand name.
	ActionAskBrand Action = "ask_brand"
	// ActionAskTask asks what to create, listing capabilities and prices.
	ActionAskTask Action = "ask_task"
	// ActionContinue keeps gathering information.
	ActionContinue Action = "continue_gathering"
	// ActionPlanReady declares the conversation ready for planning.
	ActionPlanReady Action = "plan_ready"
)

// Config contains the tunable policy parameters. The brand-ask threshold is
// an arbitrary cutoff with no deeper meaning; it is configuration, not a
// semantic constant.
type Config struct {
	// BrandAskAfter is how many user messages may accumulate before an
	// unknown brand name triggers an explicit question. Below the
	// threshold the extractor gets more chances instead.
	BrandAskAfter int
}

// Default returns the default policy configuration.
func Default() Config {
	return Config{BrandAskAfter: 2}
}

// Validate clamps out-of-range values to their defaults.
func (c *Config) Validate() {
	if c.BrandAskAfter < 1 {
		c.BrandAskAfter = 2
	}
}

// Decision is the result of evaluating one turn.
type Decision struct {
	// Action is the chosen dialogue outcome.
	Action Action
	// Response is the rendered reply text. For ActionPlanReady the
	// response depends on the computed plan, so the caller renders it
	// with RenderPlanReady once planning has run.
	Response string
	// Ready is true only for ActionPlanReady. Readiness is monotone:
	// callers must never use a false value here to clear an
	// already-ready conversation.
	Ready bool
}

// Policy evaluates conversations. Costs are the per-capability base costs,
// used when enumerating the menu of available work.
type Policy struct {
	cfg   Config
	costs map[models.Capability]int
}

// New creates a Policy with the given configuration and capability costs.
func New(cfg Config, costs map[models.Capability]int) *Policy {
	cfg.Validate()
	return &Policy{cfg: cfg, costs: costs}
}

// Evaluate runs the decision procedure for one turn. The conversation's
// slots must already include the new delta (merged under the sticky
// invariant); the delta itself is used to acknowledge newly learned
// details in the continue-gathering response.
//
// The order of the rules is fixed:
//  1. brand unknown and the user has been asked enough already -> ask_brand
//  2. brand known, no task flag                                -> ask_task
//  3. brand known, at least one task flag                      -> plan_ready
//  4. otherwise                                                -> continue_gathering
func (p *Policy) Evaluate(conv *models.Conversation, delta models.SlotSet) Decision {
	slots := &conv.Slots

	switch {
	case !slots.HasBrand() && conv.UserMessageCount() > p.cfg.BrandAskAfter:
		return Decision{Action: ActionAskBrand, Response: p.renderAskBrand()}

	case slots.HasBrand() && !slots.HasTask():
		return Decision{Action: ActionAskTask, Response: p.renderAskTask(slots.BrandName)}

	case slots.HasBrand() && slots.HasTask():
		return Decision{Action: ActionPlanReady, Ready: true}

	default:
		return Decision{Action: ActionContinue, Response: p.renderContinue(conv, delta)}
	}
}
