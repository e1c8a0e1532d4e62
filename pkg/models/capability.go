package models

// Capability identifies a category of generation work.
type Capability string

const (
	// CapabilityLogo is logo/visual identity generation.
	CapabilityLogo Capability = "logo"
	// CapabilityCopy is slogan and short-form copy generation.
	CapabilityCopy Capability = "copy"
	// CapabilityLandingPage is long-form landing page copy.
	CapabilityLandingPage Capability = "landing_page"
	// CapabilityPitchDeck is investor pitch deck copy.
	CapabilityPitchDeck Capability = "pitch_deck"
)

// Valid returns true if the capability is a known value.
func (c Capability) Valid() bool {
	switch c {
	case CapabilityLogo, CapabilityCopy, CapabilityLandingPage, CapabilityPitchDeck:
		return true
	default:
		return false
	}
}

// AllCapabilities lists every capability in display order.
func AllCapabilities() []Capability {
	return []Capability{CapabilityLogo, CapabilityCopy, CapabilityLandingPage, CapabilityPitchDeck}
}

// DisplayName returns a human-readable name for the capability.
func (c Capability) DisplayName() string {
	switch c {
	case CapabilityLogo:
		return "Logo Design"
	case CapabilityCopy:
		return "Copywriting/Slogan"
	case CapabilityLandingPage:
		return "Landing Page"
	case CapabilityPitchDeck:
		return "Pitch Deck"
	default:
		return string(c)
	}
}
