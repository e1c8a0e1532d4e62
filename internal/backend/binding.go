package backend

import (
	"context"
	"fmt"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Generator produces content for one capability from a context bundle.
// Remote generators return a *Failure on fault; local generators never
// fail.
type Generator interface {
	Generate(ctx context.Context, bundle models.ContextBundle) (string, error)
	Model() string
}

// Completer is a raw text model: one system+user exchange in, text out.
// AnthropicText and OpenAIText implement it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Compile-time interface checks.
var (
	_ Completer = (*AnthropicText)(nil)
	_ Completer = (*OpenAIText)(nil)
	_ Generator = (*LocalTemplate)(nil)
	_ Generator = (*textGenerator)(nil)
	_ Generator = (*imageGenerator)(nil)
)

// textGenerator adapts a Completer to one capability by supplying its
// prompts.
type textGenerator struct {
	completer  Completer
	capability models.Capability
}

func (g *textGenerator) Generate(ctx context.Context, bundle models.ContextBundle) (string, error) {
	system, user := textPrompt(g.capability, bundle)
	return g.completer.Complete(ctx, system, user)
}

func (g *textGenerator) Model() string { return g.completer.Model() }

// imageGenerator adapts an ImageClient by supplying the logo prompt.
type imageGenerator struct {
	client *ImageClient
}

func (g *imageGenerator) Generate(ctx context.Context, bundle models.ContextBundle) (string, error) {
	return g.client.Generate(ctx, imagePrompt(bundle))
}

func (g *imageGenerator) Model() string { return g.client.Model() }

// Binding wires one capability to its three tiers. Local must never be
// nil; it is the terminal tier and never fails.
type Binding struct {
	Capability  models.Capability
	Cost        int
	ContentType models.ContentType
	Primary     Generator
	Secondary   Generator
	Local       Generator
}

// Invoke runs the bundle through the generator for the given tier and
// returns the content and the producing model. A nil generator at a remote
// tier reports FailureUnavailable so the engine falls through.
func (b *Binding) Invoke(ctx context.Context, bundle models.ContextBundle, tier models.Tier) (content, model string, err error) {
	var gen Generator
	switch tier {
	case models.TierPrimary:
		gen = b.Primary
	case models.TierSecondary:
		gen = b.Secondary
	case models.TierLocal:
		gen = b.Local
	default:
		return "", "", &Failure{Kind: FailureMalformed, Message: fmt.Sprintf("unknown tier %q", tier)}
	}

	if gen == nil {
		return "", "", &Failure{Kind: FailureUnavailable, Message: fmt.Sprintf("%s: no %s generator configured", b.Capability, tier)}
	}

	content, err = gen.Generate(ctx, bundle)
	if err != nil {
		return "", "", err
	}
	return content, gen.Model(), nil
}

// Registry holds the binding for every capability.
type Registry struct {
	bindings map[models.Capability]*Binding
}

// Clients are the shared transport clients the registry builds bindings
// from. Nil clients leave the corresponding tier unconfigured; the local
// tier is always present.
type Clients struct {
	// Text completers for copy capabilities.
	PrimaryText   Completer
	SecondaryText Completer
	// Image clients for the logo capability.
	PrimaryImage   *ImageClient
	SecondaryImage *ImageClient
}

// NewRegistry builds a registry from the catalog and the shared clients.
func NewRegistry(cat *Catalog, clients Clients) *Registry {
	bindings := make(map[models.Capability]*Binding, len(models.AllCapabilities()))

	for _, cap := range models.AllCapabilities() {
		entry := cat.Entry(cap)
		b := &Binding{
			Capability: cap,
			Cost:       entry.Cost,
			Local:      NewLocalTemplate(cap),
		}

		if cap == models.CapabilityLogo {
			b.ContentType = models.ContentTypeImage
			if clients.PrimaryImage != nil {
				b.Primary = &imageGenerator{client: clients.PrimaryImage}
			}
			if clients.SecondaryImage != nil {
				b.Secondary = &imageGenerator{client: clients.SecondaryImage}
			}
		} else {
			b.ContentType = models.ContentTypeMarkdown
			if cap == models.CapabilityCopy {
				b.ContentType = models.ContentTypeText
			}
			if clients.PrimaryText != nil {
				b.Primary = &textGenerator{completer: clients.PrimaryText, capability: cap}
			}
			if clients.SecondaryText != nil {
				b.Secondary = &textGenerator{completer: clients.SecondaryText, capability: cap}
			}
		}

		bindings[cap] = b
	}

	return &Registry{bindings: bindings}
}

// NewRegistryFromBindings builds a registry from explicit bindings.
func NewRegistryFromBindings(bindings ...*Binding) *Registry {
	m := make(map[models.Capability]*Binding, len(bindings))
	for _, b := range bindings {
		m[b.Capability] = b
	}
	return &Registry{bindings: m}
}

// Binding returns the binding for a capability.
func (r *Registry) Binding(cap models.Capability) (*Binding, error) {
	b, ok := r.bindings[cap]
	if !ok {
		return nil, fmt.Errorf("no binding for capability %q", cap)
	}
	return b, nil
}

// Costs returns the per-capability base costs for the planner and policy.
func (r *Registry) Costs() map[models.Capability]int {
	costs := make(map[models.Capability]int, len(r.bindings))
	for cap, b := range r.bindings {
		costs[cap] = b.Cost
	}
	return costs
}
