// Package engine executes plans. Each work item runs through an explicit
// per-item tier state machine (primary remote, secondary remote, local
// template) driven by a small scheduler; items of one plan are dispatched
// concurrently under a bounded worker pool, and failures of one item never
// abort the rest.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hypertask-ai/hypertask/internal/backend"
	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Config contains the engine's tunable limits.
type Config struct {
	// Workers bounds the fan-out of concurrent item executions.
	Workers int
	// AttemptTimeout wraps every remote call.
	AttemptTimeout time.Duration
	// WarmupDelay is the pause before the single warming-up retry at the
	// primary tier.
	WarmupDelay time.Duration
}

// DefaultConfig returns the default engine limits.
func DefaultConfig() Config {
	return Config{
		Workers:        4,
		AttemptTimeout: 45 * time.Second,
		WarmupDelay:    2 * time.Second,
	}
}

// Validate clamps out-of-range values to their defaults.
func (c *Config) Validate() {
	d := DefaultConfig()
	if c.Workers < 1 {
		c.Workers = d.Workers
	}
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = d.AttemptTimeout
	}
	if c.WarmupDelay < 0 {
		c.WarmupDelay = d.WarmupDelay
	}
}

// ItemFailure records a work item that produced no deliverable.
type ItemFailure struct {
	WorkItemID string
	Capability models.Capability
	Err        error
}

// Result is the outcome of one execution pass: the deliverables in plan
// order, the items that produced nothing, and the overall status.
type Result struct {
	Deliverables []models.Deliverable
	Failures     []ItemFailure
	Status       models.ExecutionStatus
}

// Engine executes plans against the capability registry.
type Engine struct {
	registry *backend.Registry
	cfg      Config
}

// New creates an Engine.
func New(registry *backend.Registry, cfg Config) *Engine {
	cfg.Validate()
	return &Engine{registry: registry, cfg: cfg}
}

// Execute runs every item of the plan through its tier chain and collects
// partial results. The returned deliverables preserve plan order. Status
// is completed when at least one deliverable was produced.
func (e *Engine) Execute(ctx context.Context, plan *models.Plan) *Result {
	n := len(plan.Items)
	outcomes := make([]itemOutcome, n)

	sem := make(chan struct{}, e.cfg.Workers)
	var wg sync.WaitGroup

	for i, item := range plan.Items {
		wg.Add(1)
		go func(i int, item models.WorkItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = e.runItem(ctx, item)
		}(i, item)
	}
	wg.Wait()

	result := &Result{Status: models.ExecutionFailed}
	for _, out := range outcomes {
		if out.err != nil {
			result.Failures = append(result.Failures, ItemFailure{
				WorkItemID: out.itemID,
				Capability: out.capability,
				Err:        out.err,
			})
			continue
		}
		result.Deliverables = append(result.Deliverables, out.deliverable)
	}
	if len(result.Deliverables) > 0 {
		result.Status = models.ExecutionCompleted
	}

	log.Printf("[engine] executed plan for %s: %d/%d deliverables, status=%s",
		plan.BrandName, len(result.Deliverables), n, result.Status)
	return result
}

type itemOutcome struct {
	itemID      string
	capability  models.Capability
	deliverable models.Deliverable
	err         error
}

// runItem drives one work item through the tier states. The warming-up
// signal earns exactly one same-tier retry, only at primary. The local
// tier runs without a deadline but is skipped once the overall context is
// gone.
func (e *Engine) runItem(ctx context.Context, item models.WorkItem) itemOutcome {
	out := itemOutcome{itemID: item.ID, capability: item.Capability}

	binding, err := e.registry.Binding(item.Capability)
	if err != nil {
		out.err = err
		return out
	}

	var lastErr error
	for _, tier := range []models.Tier{models.TierPrimary, models.TierSecondary, models.TierLocal} {
		if tier == models.TierLocal && ctx.Err() != nil {
			lastErr = fmt.Errorf("item %s cancelled before local tier: %w", item.ID, ctx.Err())
			break
		}

		content, model, err := e.attempt(ctx, binding, item, tier)
		if err == nil {
			out.deliverable = models.Deliverable{
				ID:         uuid.New().String()[:8],
				WorkItemID: item.ID,
				Name:       deliverableName(item),
				Capability: item.Capability,
				Type:       binding.ContentType,
				Content:    content,
				Tier:       tier,
				Model:      model,
			}
			return out
		}

		lastErr = err
		debugf("item %s tier %s failed (%s), falling through", item.ID, tier, backend.KindOf(err))
	}

	out.err = lastErr
	return out
}

// attempt performs one tier attempt, including the warming-up retry at
// primary. Remote tiers run under the attempt timeout; the local tier
// needs none.
func (e *Engine) attempt(ctx context.Context, binding *backend.Binding, item models.WorkItem, tier models.Tier) (string, string, error) {
	invoke := func() (string, string, error) {
		if tier == models.TierLocal {
			return binding.Invoke(ctx, item.Context, tier)
		}
		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.AttemptTimeout)
		defer cancel()
		return binding.Invoke(attemptCtx, item.Context, tier)
	}

	content, model, err := invoke()
	if err != nil && tier == models.TierPrimary && backend.IsWarmingUp(err) {
		debugf("item %s primary warming up, retrying in %s", item.ID, e.cfg.WarmupDelay)
		select {
		case <-time.After(e.cfg.WarmupDelay):
		case <-ctx.Done():
			return "", "", err
		}
		content, model, err = invoke()
	}
	return content, model, err
}

// deliverableName derives the user-facing name, e.g. "Nimbus_Logo".
func deliverableName(item models.WorkItem) string {
	kinds := map[models.Capability]string{
		models.CapabilityLogo:        "Logo",
		models.CapabilityCopy:        "Copy",
		models.CapabilityLandingPage: "LandingPage",
		models.CapabilityPitchDeck:   "PitchDeck",
	}
	brand := item.Context.BrandName
	if brand == "" {
		brand = "Brand"
	}
	kind, ok := kinds[item.Capability]
	if !ok {
		kind = string(item.Capability)
	}
	return brand + "_" + kind
}
