// Package extract turns free-form request text into a partial slot set.
// Extraction is pure and deterministic: no state, no I/O, no randomness.
// It is pragmatic and heuristic by design, targeting majority-case phrasing;
// anything it cannot recognize is left unset for the dialogue policy to
// ask about.
package extract

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hypertask-ai/hypertask/pkg/models"
)

// Extract analyzes one message and returns a slot delta. Fields already
// present in prior are not re-extracted; the caller merges the delta under
// the sticky-slot invariant.
func Extract(text string, prior models.SlotSet) models.SlotSet {
	lower := strings.ToLower(text)

	var delta models.SlotSet

	if !prior.HasBrand() {
		delta.BrandName = extractBrandName(text, lower)
	}

	if containsAny(lower, designKeywords) {
		delta.NeedsDesign = true
	}
	if containsAny(lower, copyKeywords) {
		delta.NeedsCopy = true
	}

	if prior.Style == "" {
		delta.Style = firstCategory(lower, styleTable)
	}
	if prior.Industry == "" {
		delta.Industry = firstCategory(lower, industryTable)
	}
	if len(prior.Colors) == 0 {
		delta.Colors = extractColors(lower)
	}
	if prior.ProductDescription == "" {
		delta.ProductDescription = extractDescription(lower)
	}

	return delta
}

// extractBrandName tries the three surface patterns in order:
// "called X", "named X", "for X [stop at function word]".
// Returns "" when no pattern matches so the caller can distinguish
// "not yet known" from "known".
func extractBrandName(text, lower string) string {
	for _, marker := range []string{" called ", " named "} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			rest := text[idx+len(marker):]
			fields := strings.Fields(rest)
			if len(fields) > 0 {
				if name := titleCase(trimPunct(fields[0])); name != "" {
					return name
				}
			}
		}
	}

	if idx := strings.Index(lower, " for "); idx >= 0 {
		rest := text[idx+len(" for "):]
		fields := strings.Fields(rest)
		if len(fields) > 3 {
			fields = fields[:3]
		}
		var kept []string
		for _, w := range fields {
			if brandStopWords[strings.ToLower(trimPunct(w))] {
				break
			}
			kept = append(kept, w)
		}
		if len(kept) > 0 {
			name := trimPunct(strings.Join(kept, " "))
			var words []string
			for _, w := range strings.Fields(name) {
				words = append(words, titleCase(w))
			}
			if joined := strings.Join(words, " "); joined != "" {
				return joined
			}
		}
	}

	return ""
}

// firstCategory returns the first category whose keyword set intersects the
// text. Table order is the tie-break rule.
func firstCategory(lower string, table []categoryKeywords) string {
	for _, entry := range table {
		if containsAny(lower, entry.keywords) {
			return entry.category
		}
	}
	return ""
}

// extractColors collects recognized color names in order of first
// appearance in the text, capped at maxColors. Vocabulary order breaks
// ties for overlapping matches.
func extractColors(lower string) []string {
	type match struct {
		at    int
		color string
	}
	var matches []match
	for _, color := range colorVocabulary {
		if at := strings.Index(lower, color); at >= 0 {
			matches = append(matches, match{at, color})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].at < matches[j].at })

	var found []string
	for _, m := range matches {
		found = append(found, m.color)
		if len(found) == maxColors {
			break
		}
	}
	return found
}

// extractDescription looks for the literal separators and takes the text
// after the first one found, truncated to the first sentence terminator.
// Accepted only when its length is within [10, 200] characters.
func extractDescription(lower string) string {
	for _, sep := range descriptionSeparators {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}
		desc := lower[idx+len(sep):]
		if dot := strings.Index(desc, "."); dot >= 0 {
			desc = desc[:dot]
		}
		desc = strings.TrimSpace(desc)
		if len(desc) >= minDescriptionLen && len(desc) <= maxDescriptionLen {
			return desc
		}
		// First separator present decides the outcome, matching the
		// documented order-dependent behavior.
		return ""
	}
	return ""
}

// trimPunct strips surrounding quote and punctuation characters from a
// brand candidate.
func trimPunct(s string) string {
	return strings.Trim(s, `"'.,!?`)
}

// titleCase upper-cases the first rune and lower-cases the rest.
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
