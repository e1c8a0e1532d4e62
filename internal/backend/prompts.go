package backend

import (
	"fmt"
	"strings"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// textPrompt builds the system and user prompts for a text capability from
// the work item's context bundle.
func textPrompt(cap models.Capability, bundle models.ContextBundle) (system, user string) {
	switch cap {
	case models.CapabilityCopy:
		system = "You are a brand copywriter. Respond with the copy only, no preamble."
		user = fmt.Sprintf(
			"Write a catchy slogan and a short tagline for %s. Product: %s. Industry: %s.",
			bundle.BrandName, describe(bundle), bundle.Industry)

	case models.CapabilityLandingPage:
		system = "You are a conversion copywriter. Respond in markdown with a hero section, three feature blocks, and a call to action."
		user = fmt.Sprintf(
			"Write landing page copy for %s, a %s product in the %s industry.",
			bundle.BrandName, describe(bundle), bundle.Industry)

	case models.CapabilityPitchDeck:
		system = "You are a startup advisor. Respond in markdown, one '# Slide N: Title' heading per slide with bullet points, eight slides."
		user = fmt.Sprintf(
			"Write an investor pitch deck outline for %s in the %s industry. Original request: %s",
			bundle.BrandName, bundle.Industry, bundle.RawRequest)

	default:
		system = "You are a helpful creative assistant."
		user = bundle.RawRequest
	}
	return system, user
}

// imagePrompt builds the prompt for logo generation.
func imagePrompt(bundle models.ContextBundle) string {
	colors := strings.Join(bundle.Colors, " and ")
	if colors == "" {
		colors = "purple and cyan"
	}
	return fmt.Sprintf(
		"professional logo for %q, %s style, %s color palette, %s industry, vector, flat design, white background",
		bundle.BrandName, bundle.Style, colors, bundle.Industry)
}

func describe(bundle models.ContextBundle) string {
	if bundle.ProductDescription != "" {
		return bundle.ProductDescription
	}
	return "innovative"
}
