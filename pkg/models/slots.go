package models

// SlotSet holds the structured information extracted from a conversation.
// Each field is independently optional; the zero value means "not yet known",
// which is distinct from "known to be empty".
type SlotSet struct {
	// BrandName is the brand or company name, title-cased.
	BrandName string `json:"brand_name,omitempty"`
	// NeedsDesign is true once any design-related request has been seen.
	NeedsDesign bool `json:"needs_design,omitempty"`
	// NeedsCopy is true once any copy-related request has been seen.
	NeedsCopy bool `json:"needs_copy,omitempty"`
	// Style is the detected visual/tonal style category.
	Style string `json:"style,omitempty"`
	// Colors holds up to three recognized color names.
	Colors []string `json:"colors,omitempty"`
	// Industry is the detected industry category.
	Industry string `json:"industry,omitempty"`
	// ProductDescription is a short free-text description of what the
	// product does.
	ProductDescription string `json:"product_description,omitempty"`
}

// Merge applies a delta to the slot set under the sticky-slot invariant:
// a field set from user text is never erased by a later turn, and the
// boolean flags only ever turn true.
func (s *SlotSet) Merge(delta SlotSet) {
	if s.BrandName == "" && delta.BrandName != "" {
		s.BrandName = delta.BrandName
	}
	if delta.NeedsDesign {
		s.NeedsDesign = true
	}
	if delta.NeedsCopy {
		s.NeedsCopy = true
	}
	if s.Style == "" && delta.Style != "" {
		s.Style = delta.Style
	}
	if len(s.Colors) == 0 && len(delta.Colors) > 0 {
		s.Colors = append([]string(nil), delta.Colors...)
	}
	if s.Industry == "" && delta.Industry != "" {
		s.Industry = delta.Industry
	}
	if s.ProductDescription == "" && delta.ProductDescription != "" {
		s.ProductDescription = delta.ProductDescription
	}
}

// HasBrand reports whether the brand name is known.
func (s *SlotSet) HasBrand() bool {
	return s.BrandName != ""
}

// HasTask reports whether at least one task flag is set.
func (s *SlotSet) HasTask() bool {
	return s.NeedsDesign || s.NeedsCopy
}

// IsEmpty reports whether nothing has been extracted yet.
func (s *SlotSet) IsEmpty() bool {
	return s.BrandName == "" && !s.NeedsDesign && !s.NeedsCopy &&
		s.Style == "" && len(s.Colors) == 0 && s.Industry == "" &&
		s.ProductDescription == ""
}

// Clone returns a deep copy of the slot set.
func (s *SlotSet) Clone() SlotSet {
	out := *s
	if len(s.Colors) > 0 {
		out.Colors = append([]string(nil), s.Colors...)
	}
	return out
}
