package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hypertask-ai/hypertask/internal/backend"
	"github.com/hypertask-ai/hypertask/pkg/models"
)

// fakeGen scripts a generator: it returns each entry of script in turn,
// then repeats the last one.
type fakeGen struct {
	script []fakeResult
	calls  atomic.Int32
	model  string
}

type fakeResult struct {
	content string
	err     error
}

func (f *fakeGen) Generate(ctx context.Context, _ models.ContextBundle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &backend.Failure{Kind: backend.FailureTimeout, Message: "ctx", Err: err}
	}
	n := int(f.calls.Add(1)) - 1
	if n >= len(f.script) {
		n = len(f.script) - 1
	}
	r := f.script[n]
	return r.content, r.err
}

func (f *fakeGen) Model() string {
	if f.model == "" {
		return "fake"
	}
	return f.model
}

func ok(content string) fakeResult { return fakeResult{content: content} }

func fail(kind backend.FailureKind) fakeResult {
	return fakeResult{err: &backend.Failure{Kind: kind, Message: "scripted"}}
}

func testConfig() Config {
	return Config{Workers: 2, AttemptTimeout: time.Second, WarmupDelay: time.Millisecond}
}

func logoItem() models.WorkItem {
	return models.WorkItem{
		ID:         "logo",
		Capability: models.CapabilityLogo,
		Context:    models.ContextBundle{BrandName: "Nimbus", Style: "modern", Colors: []string{"purple"}},
	}
}

func copyItem() models.WorkItem {
	return models.WorkItem{
		ID:         "copy",
		Capability: models.CapabilityCopy,
		Context:    models.ContextBundle{BrandName: "Nimbus"},
	}
}

func registryWith(cap models.Capability, primary, secondary backend.Generator) *backend.Registry {
	return backend.NewRegistryFromBindings(&backend.Binding{
		Capability:  cap,
		Cost:        50,
		ContentType: models.ContentTypeImage,
		Primary:     primary,
		Secondary:   secondary,
		Local:       backend.NewLocalTemplate(cap),
	})
}

func TestExecute_PrimarySucceeds(t *testing.T) {
	primary := &fakeGen{script: []fakeResult{ok("img")}, model: "sdxl"}
	e := New(registryWith(models.CapabilityLogo, primary, nil), testConfig())

	res := e.Execute(context.Background(), &models.Plan{BrandName: "Nimbus", Items: []models.WorkItem{logoItem()}})

	if res.Status != models.ExecutionCompleted {
		t.Fatalf("status = %q, want completed", res.Status)
	}
	d := res.Deliverables[0]
	if d.Tier != models.TierPrimary {
		t.Errorf("tier = %q, want primary", d.Tier)
	}
	if d.Model != "sdxl" {
		t.Errorf("model = %q, want sdxl", d.Model)
	}
	if d.Name != "Nimbus_Logo" {
		t.Errorf("name = %q, want Nimbus_Logo", d.Name)
	}
}

func TestExecute_FallsBackToSecondary(t *testing.T) {
	primary := &fakeGen{script: []fakeResult{fail(backend.FailureUnavailable)}}
	secondary := &fakeGen{script: []fakeResult{ok("img")}, model: "flux"}
	e := New(registryWith(models.CapabilityLogo, primary, secondary), testConfig())

	res := e.Execute(context.Background(), &models.Plan{Items: []models.WorkItem{logoItem()}})

	if res.Deliverables[0].Tier != models.TierSecondary {
		t.Errorf("tier = %q, want secondary", res.Deliverables[0].Tier)
	}
	if got := primary.calls.Load(); got != 1 {
		t.Errorf("primary calls = %d, want 1 (no retry for unavailable)", got)
	}
}

func TestExecute_BothRemotesTimeOut_LocalCompletes(t *testing.T) {
	primary := &fakeGen{script: []fakeResult{fail(backend.FailureTimeout)}}
	secondary := &fakeGen{script: []fakeResult{fail(backend.FailureTimeout)}}
	e := New(registryWith(models.CapabilityLogo, primary, secondary), testConfig())

	res := e.Execute(context.Background(), &models.Plan{Items: []models.WorkItem{logoItem()}})

	if res.Status != models.ExecutionCompleted {
		t.Fatalf("status = %q, want completed", res.Status)
	}
	d := res.Deliverables[0]
	if d.Tier != models.TierLocal {
		t.Errorf("tier = %q, want local", d.Tier)
	}
	if d.Content == "" {
		t.Error("local tier produced empty content")
	}
}

func TestExecute_WarmingUpRetriedOnceAtPrimary(t *testing.T) {
	primary := &fakeGen{script: []fakeResult{fail(backend.FailureWarmingUp), ok("img")}}
	e := New(registryWith(models.CapabilityLogo, primary, nil), testConfig())

	res := e.Execute(context.Background(), &models.Plan{Items: []models.WorkItem{logoItem()}})

	if got := primary.calls.Load(); got != 2 {
		t.Fatalf("primary calls = %d, want 2 (one warming-up retry)", got)
	}
	if res.Deliverables[0].Tier != models.TierPrimary {
		t.Errorf("tier = %q, want primary after retry", res.Deliverables[0].Tier)
	}
}

func TestExecute_WarmingUpNotRetriedAtSecondary(t *testing.T) {
	primary := &fakeGen{script: []fakeResult{fail(backend.FailureUnavailable)}}
	secondary := &fakeGen{script: []fakeResult{fail(backend.FailureWarmingUp), ok("img")}}
	e := New(registryWith(models.CapabilityLogo, primary, secondary), testConfig())

	res := e.Execute(context.Background(), &models.Plan{Items: []models.WorkItem{logoItem()}})

	if got := secondary.calls.Load(); got != 1 {
		t.Errorf("secondary calls = %d, want 1 (retry is primary-only)", got)
	}
	if res.Deliverables[0].Tier != models.TierLocal {
		t.Errorf("tier = %q, want local", res.Deliverables[0].Tier)
	}
}

func TestExecute_WarmingUpTwiceFallsThrough(t *testing.T) {
	primary := &fakeGen{script: []fakeResult{fail(backend.FailureWarmingUp), fail(backend.FailureWarmingUp)}}
	e := New(registryWith(models.CapabilityLogo, primary, nil), testConfig())

	res := e.Execute(context.Background(), &models.Plan{Items: []models.WorkItem{logoItem()}})

	if got := primary.calls.Load(); got != 2 {
		t.Errorf("primary calls = %d, want exactly 2", got)
	}
	if res.Deliverables[0].Tier != models.TierLocal {
		t.Errorf("tier = %q, want local", res.Deliverables[0].Tier)
	}
}

func TestExecute_ItemFailuresAreIndependent(t *testing.T) {
	logoPrimary := &fakeGen{script: []fakeResult{fail(backend.FailureUnavailable)}}
	copyPrimary := &fakeGen{script: []fakeResult{ok("slogan")}}

	reg := backend.NewRegistryFromBindings(
		&backend.Binding{
			Capability:  models.CapabilityLogo,
			ContentType: models.ContentTypeImage,
			Primary:     logoPrimary,
			Local:       backend.NewLocalTemplate(models.CapabilityLogo),
		},
		&backend.Binding{
			Capability:  models.CapabilityCopy,
			ContentType: models.ContentTypeText,
			Primary:     copyPrimary,
			Local:       backend.NewLocalTemplate(models.CapabilityCopy),
		},
	)
	e := New(reg, testConfig())

	res := e.Execute(context.Background(), &models.Plan{
		Items: []models.WorkItem{logoItem(), copyItem()},
	})

	if len(res.Deliverables) != 2 {
		t.Fatalf("deliverables = %d, want 2", len(res.Deliverables))
	}
	// Plan order is preserved regardless of completion order.
	if res.Deliverables[0].Capability != models.CapabilityLogo {
		t.Errorf("deliverable 0 = %q, want logo", res.Deliverables[0].Capability)
	}
	if res.Deliverables[0].Tier != models.TierLocal {
		t.Errorf("logo tier = %q, want local", res.Deliverables[0].Tier)
	}
	if res.Deliverables[1].Tier != models.TierPrimary {
		t.Errorf("copy tier = %q, want primary", res.Deliverables[1].Tier)
	}
}

func TestExecute_CancelledContextSkipsLocal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &fakeGen{script: []fakeResult{ok("never")}}
	e := New(registryWith(models.CapabilityLogo, primary, nil), testConfig())

	res := e.Execute(ctx, &models.Plan{Items: []models.WorkItem{logoItem()}})

	if res.Status != models.ExecutionFailed {
		t.Errorf("status = %q, want failed when everything is cancelled", res.Status)
	}
	if len(res.Failures) != 1 {
		t.Errorf("failures = %d, want 1", len(res.Failures))
	}
}

func TestExecute_MissingBindingRecordedAsFailure(t *testing.T) {
	e := New(backend.NewRegistryFromBindings(), testConfig())

	res := e.Execute(context.Background(), &models.Plan{Items: []models.WorkItem{copyItem()}})

	if res.Status != models.ExecutionFailed {
		t.Errorf("status = %q, want failed", res.Status)
	}
	if len(res.Failures) != 1 || res.Failures[0].WorkItemID != "copy" {
		t.Errorf("failures = %+v, want the copy item", res.Failures)
	}
}

func TestConfig_Validate(t *testing.T) {
	c := Config{}
	c.Validate()
	d := DefaultConfig()
	if c.Workers != d.Workers || c.AttemptTimeout != d.AttemptTimeout || c.WarmupDelay != d.WarmupDelay {
		t.Errorf("Validate() = %+v, want defaults %+v", c, d)
	}
}
