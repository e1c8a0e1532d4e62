package extract

// categoryKeywords pairs a category name with the keywords that map to it.
// Tables are evaluated in declared order and the first category whose
// keyword set intersects the text wins. The order is part of the contract:
// reordering entries changes tie-break results.
type categoryKeywords struct {
	category string
	keywords []string
}

// designKeywords mark a message as requesting design work.
var designKeywords = []string{
	"logo", "design", "visual", "graphic", "image", "icon", "brand identity",
}

// copyKeywords mark a message as requesting copywriting work.
var copyKeywords = []string{
	"slogan", "copy", "text", "tagline", "campaign", "write", "content",
	"landing page", "pitch deck", "email", "social", "headline", "description",
}

// styleTable maps style categories to their trigger keywords.
var styleTable = []categoryKeywords{
	{"modern", []string{"modern", "contemporary", "sleek", "clean"}},
	{"vintage", []string{"vintage", "retro", "classic", "old-school"}},
	{"tech", []string{"tech", "digital", "futuristic", "innovative"}},
	{"luxury", []string{"luxury", "premium", "elegant", "sophisticated"}},
	{"playful", []string{"playful", "fun", "energetic", "vibrant"}},
	{"minimalist", []string{"minimal", "simple", "minimalist"}},
	{"professional", []string{"professional", "corporate", "business"}},
}

// industryTable maps industry categories to their trigger keywords.
var industryTable = []categoryKeywords{
	{"fintech", []string{"fintech", "finance", "banking", "payment", "crypto", "investment"}},
	{"saas", []string{"saas", "software", "platform", "app", "tool"}},
	{"ecommerce", []string{"ecommerce", "shop", "store", "retail", "product"}},
	{"healthcare", []string{"healthcare", "medical", "health", "wellness", "fitness"}},
	{"education", []string{"education", "learning", "course", "training"}},
	{"tech", []string{"tech", "technology", "ai", "machine learning"}},
}

// colorVocabulary lists the recognized color names. Matches are reported
// in first-seen text order, capped at maxColors; this declared order only
// breaks ties.
var colorVocabulary = []string{
	"red", "blue", "green", "yellow", "purple", "orange", "pink",
	"cyan", "magenta", "brown", "black", "white", "gray", "grey",
	"gold", "silver", "bronze", "teal", "navy", "maroon", "lime",
	"indigo", "violet", "turquoise", "coral", "salmon",
}

// brandStopWords terminate a "for X" brand candidate.
var brandStopWords = map[string]bool{
	"that":  true,
	"which": true,
	"who":   true,
	"where": true,
	"when":  true,
	"a":     true,
	"an":    true,
	"the":   true,
}

// descriptionSeparators introduce a product description, tried in order.
var descriptionSeparators = []string{" for ", " that ", " which "}

const (
	// maxColors is the maximum number of colors collected per message.
	maxColors = 3
	// minDescriptionLen and maxDescriptionLen bound an accepted product
	// description.
	minDescriptionLen = 10
	maxDescriptionLen = 200
)
