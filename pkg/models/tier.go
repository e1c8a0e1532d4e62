package models

// Tier represents a fallback level attempted for a work item.
type Tier string

const (
	// TierPrimary is the primary remote endpoint.
	TierPrimary Tier = "primary"
	// TierSecondary is the secondary remote endpoint (different backing model).
	TierSecondary Tier = "secondary"
	// TierLocal is the deterministic local template. It has no external
	// dependency and is the terminal tier.
	TierLocal Tier = "local"
)

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case TierPrimary, TierSecondary, TierLocal:
		return true
	default:
		return false
	}
}
