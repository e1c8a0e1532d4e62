package backend

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// CatalogEntry describes one capability: its base cost in credits and the
// model used at each remote tier.
type CatalogEntry struct {
	Cost           int    `yaml:"cost"`
	PrimaryModel   string `yaml:"primary_model"`
	SecondaryModel string `yaml:"secondary_model"`
}

// Catalog is the capability catalog, loadable from a YAML file so prices
// and model names can change without a rebuild.
type Catalog struct {
	Capabilities map[string]CatalogEntry `yaml:"capabilities"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Capabilities: map[string]CatalogEntry{
			string(models.CapabilityLogo): {
				Cost:           50,
				PrimaryModel:   "stabilityai/stable-diffusion-xl-base-1.0",
				SecondaryModel: "black-forest-labs/FLUX.1-schnell",
			},
			string(models.CapabilityCopy): {
				Cost:           20,
				PrimaryModel:   "claude-sonnet-4-20250514",
				SecondaryModel: "gpt-4o-mini",
			},
			string(models.CapabilityLandingPage): {
				Cost:           25,
				PrimaryModel:   "claude-sonnet-4-20250514",
				SecondaryModel: "gpt-4o-mini",
			},
			string(models.CapabilityPitchDeck): {
				Cost:           30,
				PrimaryModel:   "claude-sonnet-4-20250514",
				SecondaryModel: "gpt-4o-mini",
			},
		},
	}
}

// LoadCatalog reads a catalog from a YAML file. Entries missing from the
// file keep their built-in defaults.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	loaded := &Catalog{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := DefaultCatalog()
	for name, entry := range loaded.Capabilities {
		base := cat.Capabilities[name]
		if entry.Cost > 0 {
			base.Cost = entry.Cost
		}
		if entry.PrimaryModel != "" {
			base.PrimaryModel = entry.PrimaryModel
		}
		if entry.SecondaryModel != "" {
			base.SecondaryModel = entry.SecondaryModel
		}
		cat.Capabilities[name] = base
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate checks that every known capability has a positive cost.
func (c *Catalog) Validate() error {
	for _, cap := range models.AllCapabilities() {
		entry, ok := c.Capabilities[string(cap)]
		if !ok {
			return fmt.Errorf("catalog: missing capability %q", cap)
		}
		if entry.Cost <= 0 {
			return fmt.Errorf("catalog: capability %q has non-positive cost %d", cap, entry.Cost)
		}
	}
	return nil
}

// Costs returns the per-capability base costs.
func (c *Catalog) Costs() map[models.Capability]int {
	costs := make(map[models.Capability]int, len(c.Capabilities))
	for name, entry := range c.Capabilities {
		costs[models.Capability(name)] = entry.Cost
	}
	return costs
}

// Entry returns the catalog entry for a capability.
func (c *Catalog) Entry(cap models.Capability) CatalogEntry {
	return c.Capabilities[string(cap)]
}
