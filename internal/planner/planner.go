// Package planner turns a filled slot set into an ordered, priced plan of
// work items. Planning is deterministic: identical inputs always produce
// identical plans, and costs come from the capability back-ends rather
// than from constants buried here.
package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

const (
	// FeeRate is the fixed service fee applied to the aggregate cost.
	FeeRate = 0.05
	// PerItemDuration is the estimated wall time per work item.
	PerItemDuration = 30 * time.Second
)

// Defaults substituted for unset slots on design work.
const (
	defaultStyle    = "modern minimalist"
	defaultIndustry = "technology"
)

var defaultColors = []string{"purple", "cyan"}

// Defaults substituted for unset slots on copy work.
const (
	defaultDescription  = "innovative solution"
	defaultCopyIndustry = "saas"
)

// Planner derives plans from slot sets.
type Planner struct {
	costs map[models.Capability]int
}

// New creates a Planner using the given per-capability base costs.
func New(costs map[models.Capability]int) *Planner {
	return &Planner{costs: costs}
}

// Plan produces a plan from the slot set and the original request text.
// When neither task flag is set it emits the default pair (one design item
// and one general copy item); an unclear request is not an error.
func (p *Planner) Plan(slots models.SlotSet, rawText string) *models.Plan {
	brand := slots.BrandName
	if brand == "" {
		brand = "Brand"
	}

	var items []models.WorkItem

	needsDesign := slots.NeedsDesign
	needsCopy := slots.NeedsCopy
	if !needsDesign && !needsCopy {
		needsDesign = true
		needsCopy = true
	}

	if needsDesign {
		items = append(items, p.logoItem(brand, slots, rawText))
	}
	if needsCopy {
		items = append(items, p.copyItem(brand, slots, rawText))
	}

	total := 0
	for _, item := range items {
		total += item.Cost
	}

	return &models.Plan{
		BrandName:         brand,
		Items:             items,
		TotalCost:         total,
		Fee:               round2(float64(total) * FeeRate),
		EstimatedDuration: time.Duration(len(items)) * PerItemDuration,
		CreatedAt:         time.Now(),
	}
}

// logoItem builds the design work item, substituting defaults for unset
// style, colors, and industry.
func (p *Planner) logoItem(brand string, slots models.SlotSet, rawText string) models.WorkItem {
	style := slots.Style
	if style == "" {
		style = defaultStyle
	}
	colors := slots.Colors
	if len(colors) == 0 {
		colors = defaultColors
	}
	industry := slots.Industry
	if industry == "" {
		industry = defaultIndustry
	}

	return models.WorkItem{
		ID:          string(models.CapabilityLogo),
		Capability:  models.CapabilityLogo,
		Cost:        p.costs[models.CapabilityLogo],
		Description: fmt.Sprintf("Professional logo design for %s", brand),
		Context: models.ContextBundle{
			BrandName:  brand,
			RawRequest: rawText,
			Style:      style,
			Colors:     append([]string(nil), colors...),
			Industry:   industry,
		},
	}
}

// copyItem selects exactly one copy work item: "landing page" outranks
// "pitch deck", and anything else gets general-purpose copy.
func (p *Planner) copyItem(brand string, slots models.SlotSet, rawText string) models.WorkItem {
	lower := strings.ToLower(rawText)

	industry := slots.Industry
	if industry == "" {
		industry = defaultCopyIndustry
	}

	switch {
	case strings.Contains(lower, "landing page"):
		desc := slots.ProductDescription
		if desc == "" {
			desc = defaultDescription
		}
		return models.WorkItem{
			ID:          string(models.CapabilityLandingPage),
			Capability:  models.CapabilityLandingPage,
			Cost:        p.costs[models.CapabilityLandingPage],
			Description: fmt.Sprintf("Complete landing page copy for %s", brand),
			Context: models.ContextBundle{
				BrandName:          brand,
				RawRequest:         rawText,
				Industry:           industry,
				ProductDescription: desc,
			},
		}

	case strings.Contains(lower, "pitch deck"):
		return models.WorkItem{
			ID:          string(models.CapabilityPitchDeck),
			Capability:  models.CapabilityPitchDeck,
			Cost:        p.costs[models.CapabilityPitchDeck],
			Description: fmt.Sprintf("Investor pitch deck for %s", brand),
			Context: models.ContextBundle{
				BrandName:  brand,
				RawRequest: rawText,
				Industry:   industry,
			},
		}

	default:
		return models.WorkItem{
			ID:          string(models.CapabilityCopy),
			Capability:  models.CapabilityCopy,
			Cost:        p.costs[models.CapabilityCopy],
			Description: fmt.Sprintf("Professional copy for %s", brand),
			Context: models.ContextBundle{
				BrandName:          brand,
				RawRequest:         rawText,
				Industry:           industry,
				ProductDescription: slots.ProductDescription,
			},
		}
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
