package policy

import (
	"fmt"
	"strings"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// greetingWords mark a message as a plain greeting.
var greetingWords = []string{"hi", "hello", "hey", "sup", "yo"}

func (p *Policy) renderAskBrand() string {
	return "I'd love to help! What's the name of your brand or company?"
}

// renderAskTask enumerates every capability with its price.
func (p *Policy) renderAskTask(brand string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Great! What would you like me to create for %s?\n\n", brand)
	for _, cap := range models.AllCapabilities() {
		fmt.Fprintf(&b, "• %s (%d credits)\n", cap.DisplayName(), p.costs[cap])
	}
	b.WriteString("• Full Brand Package (Logo + Copy)")
	return b.String()
}

// RenderPlanReady summarizes a computed plan: items, total, fee, and the
// estimated time.
func (p *Policy) RenderPlanReady(plan *models.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Perfect! Here's what I'll create for %s:\n", plan.BrandName)
	for _, item := range plan.Items {
		fmt.Fprintf(&b, "\n• %s (%d credits)", item.Description, item.Cost)
	}
	fmt.Fprintf(&b, "\n\n**Total Cost:** %d credits", plan.TotalCost)
	fmt.Fprintf(&b, "\n**Service Fee (5%%):** %.2f credits", plan.Fee)
	fmt.Fprintf(&b, "\n**Estimated Time:** %.0f seconds", plan.EstimatedDuration.Seconds())
	b.WriteString("\n\nReady to start? I'll dispatch the generation agents!")
	return b.String()
}

// renderContinue acknowledges anything newly learned this turn and asks for
// whichever of style / product description is still missing, preferring
// style when a design task is pending.
func (p *Policy) renderContinue(conv *models.Conversation, delta models.SlotSet) string {
	last := strings.ToLower(conv.LastUserMessage())

	// A bare greeting on an early turn gets the menu.
	if isGreeting(last) && conv.UserMessageCount() <= 1 {
		return p.renderGreeting()
	}

	// Direct pricing questions are answered inline.
	if strings.Contains(last, "?") && mentionsPricing(last) {
		return p.renderPricing()
	}

	slots := &conv.Slots
	brand := slots.BrandName
	if brand == "" {
		brand = "your brand"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Got it! I'm working on something for %s. ", brand)

	if delta.Style != "" {
		fmt.Fprintf(&b, "I'll use a %s style. ", delta.Style)
	}
	if len(delta.Colors) > 0 {
		fmt.Fprintf(&b, "Using %s colors. ", strings.Join(delta.Colors, ", "))
	}
	if delta.Industry != "" {
		fmt.Fprintf(&b, "Perfect for the %s industry. ", delta.Industry)
	}

	switch {
	case slots.NeedsDesign && slots.Style == "":
		b.WriteString("\n\nWhat style are you thinking? (modern, minimalist, tech, vintage, playful)")
	case slots.NeedsCopy && slots.ProductDescription == "":
		fmt.Fprintf(&b, "\n\nWhat does %s do? (e.g., 'helps people invest easily', 'connects freelancers')", brand)
	default:
		b.WriteString("\n\nAnything else you'd like to add before we start?")
	}

	return b.String()
}

func (p *Policy) renderGreeting() string {
	var b strings.Builder
	b.WriteString("Hey there! I'm your HyperTask assistant.\n\nI can help you with:\n")
	for _, cap := range models.AllCapabilities() {
		fmt.Fprintf(&b, "• %s (%d credits)\n", cap.DisplayName(), p.costs[cap])
	}
	b.WriteString("\nWhat would you like to create today?")
	return b.String()
}

func (p *Policy) renderPricing() string {
	var b strings.Builder
	b.WriteString("Our pricing is transparent:\n\n")
	for _, cap := range models.AllCapabilities() {
		fmt.Fprintf(&b, "• **%s**: %d credits\n", cap.DisplayName(), p.costs[cap])
	}
	b.WriteString("\nA 5% service fee applies to every order.")
	return b.String()
}

func isGreeting(lower string) bool {
	for _, field := range strings.Fields(lower) {
		word := strings.Trim(field, ".,!?")
		for _, w := range greetingWords {
			if word == w {
				return true
			}
		}
	}
	return false
}

func mentionsPricing(lower string) bool {
	return strings.Contains(lower, "cost") ||
		strings.Contains(lower, "price") ||
		strings.Contains(lower, "how much")
}
