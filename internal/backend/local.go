package backend

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// localModel is the model tag recorded on deliverables produced by the
// template tier.
const localModel = "local-template"

// sloganTemplates are the deterministic fallback slogans. The brand name's
// hash picks one, so the same brand always gets the same slogan.
var sloganTemplates = []string{
	"%s: Where Excellence Meets Innovation",
	"%s: Your Partner in Success",
	"%s: Quality You Can Trust",
	"Experience the %s Difference",
	"%s: Making Life Better",
	"Choose %s, Choose Quality",
	"%s: Innovation for Tomorrow",
}

// svgPalette maps color words to hex fills for the monogram logo.
var svgPalette = map[string]string{
	"red": "#EF4444", "blue": "#3B82F6", "green": "#22C55E",
	"yellow": "#EAB308", "orange": "#F97316", "purple": "#8B5CF6",
	"pink": "#EC4899", "black": "#111827", "white": "#F9FAFB",
	"gray": "#6B7280", "grey": "#6B7280", "gold": "#D4AF37",
	"silver": "#C0C0C0", "teal": "#14B8A6", "cyan": "#06B6D4",
	"navy": "#1E3A8A", "magenta": "#D946EF", "maroon": "#7F1D1D",
	"olive": "#556B2F", "lime": "#84CC16", "indigo": "#4F46E5",
	"violet": "#8B5CF6", "turquoise": "#40E0D0", "coral": "#FF7F50",
	"beige": "#F5F5DC", "brown": "#92400E",
}

// LocalTemplate is the terminal generation tier: pure functions of the
// context bundle, no external dependency, never fails.
type LocalTemplate struct {
	capability models.Capability
}

// NewLocalTemplate creates the local generator for a capability.
func NewLocalTemplate(cap models.Capability) *LocalTemplate {
	return &LocalTemplate{capability: cap}
}

// Generate renders the template for this capability. The error return
// satisfies the Generator interface and is always nil.
func (l *LocalTemplate) Generate(_ context.Context, bundle models.ContextBundle) (string, error) {
	switch l.capability {
	case models.CapabilityLogo:
		return monogramLogo(bundle), nil
	case models.CapabilityLandingPage:
		return landingPage(bundle), nil
	case models.CapabilityPitchDeck:
		return pitchDeck(bundle), nil
	default:
		return slogan(bundle.BrandName), nil
	}
}

// Model returns the template tier's model tag.
func (l *LocalTemplate) Model() string { return localModel }

// slogan picks a template by hashing the brand name.
func slogan(brand string) string {
	if brand == "" {
		brand = "Brand"
	}
	h := fnv.New32a()
	h.Write([]byte(brand))
	tpl := sloganTemplates[int(h.Sum32())%len(sloganTemplates)]
	return fmt.Sprintf(tpl, brand)
}

// monogramLogo renders an SVG monogram: concentric two-color circles with
// the brand initial, returned as a data URI.
func monogramLogo(bundle models.ContextBundle) string {
	primary, secondary := "#8B5CF6", "#06B6D4"
	if len(bundle.Colors) > 0 {
		if hex, ok := svgPalette[bundle.Colors[0]]; ok {
			primary = hex
		}
	}
	if len(bundle.Colors) > 1 {
		if hex, ok := svgPalette[bundle.Colors[1]]; ok {
			secondary = hex
		}
	}

	initial := "B"
	if runes := []rune(bundle.BrandName); len(runes) > 0 {
		initial = strings.ToUpper(string(runes[0]))
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="800" height="800" viewBox="0 0 800 800">`)
	b.WriteString(`<rect width="800" height="800" fill="white"/>`)
	fmt.Fprintf(&b, `<defs><radialGradient id="g"><stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></radialGradient></defs>`, primary, secondary)
	b.WriteString(`<circle cx="400" cy="400" r="250" fill="url(#g)"/>`)
	fmt.Fprintf(&b, `<text x="400" y="400" font-family="Helvetica, Arial, sans-serif" font-size="280" font-weight="bold" fill="white" text-anchor="middle" dominant-baseline="central">%s</text>`, initial)
	b.WriteString(`</svg>`)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(b.String()))
}

// landingPage renders markdown copy: hero, three features, call to action.
func landingPage(bundle models.ContextBundle) string {
	brand := bundle.BrandName
	if brand == "" {
		brand = "Brand"
	}
	desc := bundle.ProductDescription
	if desc == "" {
		desc = "an innovative solution"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", brand)
	fmt.Fprintf(&b, "## %s\n\n", slogan(brand))
	fmt.Fprintf(&b, "%s is %s, built for the %s industry.\n\n", brand, desc, bundle.Industry)
	b.WriteString("## Why " + brand + "\n\n")
	fmt.Fprintf(&b, "- **Effortless** — %s works out of the box, no setup required.\n", brand)
	b.WriteString("- **Reliable** — built to keep working when everything else doesn't.\n")
	fmt.Fprintf(&b, "- **Yours** — tailored to the %s space from day one.\n\n", bundle.Industry)
	fmt.Fprintf(&b, "## Get Started\n\nJoin the teams already using %s. Start free today.\n", brand)
	return b.String()
}

// pitchDeck renders a markdown deck, one "## Slide N: Title" section per
// slide.
func pitchDeck(bundle models.ContextBundle) string {
	brand := bundle.BrandName
	if brand == "" {
		brand = "Brand"
	}

	slides := []struct {
		title   string
		content string
	}{
		{"The Problem", fmt.Sprintf("The %s industry still runs on slow, manual workflows.", bundle.Industry)},
		{"The Solution", fmt.Sprintf("%s replaces them with one simple product.", brand)},
		{"Market", fmt.Sprintf("The %s market is large and growing.", bundle.Industry)},
		{"Product", fmt.Sprintf("%s delivers value from the first session.", brand)},
		{"Business Model", "Simple per-seat pricing with a free tier."},
		{"Traction", "Early users, strong retention, organic growth."},
		{"Team", fmt.Sprintf("Operators with deep %s experience.", bundle.Industry)},
		{"The Ask", fmt.Sprintf("Join us in building %s.", brand)},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s - Pitch Deck\n", brand)
	for i, s := range slides {
		fmt.Fprintf(&b, "\n---\n\n## Slide %d: %s\n\n%s\n", i+1, s.title, s.content)
	}
	return b.String()
}
