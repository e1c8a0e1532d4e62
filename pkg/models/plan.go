package models

import "time"

// ContextBundle carries the subset of slot data relevant to one work item,
// plus the original request text.
type ContextBundle struct {
	// BrandName is the brand the work is for.
	BrandName string `json:"brand_name"`
	// RawRequest is the original user request text.
	RawRequest string `json:"raw_request"`
	// Style is the visual/tonal style, defaulted if the slot was unset.
	Style string `json:"style,omitempty"`
	// Colors are the requested colors, defaulted if the slot was unset.
	Colors []string `json:"colors,omitempty"`
	// Industry is the industry category, defaulted if the slot was unset.
	Industry string `json:"industry,omitempty"`
	// ProductDescription describes what the product does.
	ProductDescription string `json:"product_description,omitempty"`
}

// WorkItem is one billable unit of work within a plan.
type WorkItem struct {
	// ID is the unique identifier for this item.
	ID string `json:"id"`
	// Capability is the category of generation work required.
	Capability Capability `json:"capability"`
	// Cost is the fixed base cost declared by the capability's back-end.
	Cost int `json:"cost"`
	// Description is a human-readable summary of the item.
	Description string `json:"description"`
	// Context is the data handed to the generation back-end.
	Context ContextBundle `json:"context"`
}

// Plan is an ordered, priced list of work items derived from a conversation.
// Plans are immutable once produced; a new planning pass replaces, never
// mutates, the plan on a conversation.
type Plan struct {
	// BrandName is the brand the plan was produced for.
	BrandName string `json:"brand_name"`
	// Items is the ordered list of work items.
	Items []WorkItem `json:"items"`
	// TotalCost is the sum of item costs.
	TotalCost int `json:"total_cost"`
	// Fee is TotalCost times the fixed fee rate, rounded to two decimals.
	Fee float64 `json:"fee"`
	// EstimatedDuration is proportional to the item count.
	EstimatedDuration time.Duration `json:"estimated_duration"`
	// CreatedAt is when the plan was produced.
	CreatedAt time.Time `json:"created_at"`
}

// ItemCount returns the number of work items in the plan.
func (p *Plan) ItemCount() int {
	return len(p.Items)
}
