package grouper

import "strings"

// Keyword classification labels, in priority order.
const (
	CategoryBrand      = "brand"
	CategoryAttraction = "attraction"
	CategoryCompetitor = "competitor"
	CategoryDiscovery  = "discovery"
	CategoryCategory   = "category"
	CategoryGeneric    = "generic"
)

// classifierRule pairs a label with its predicate. Rules are evaluated
// top-down and the first match wins, so overlapping keywords such as
// "walking tour tickets london" classify deterministically.
type classifierRule struct {
	Label string
	Match func(keyword, brand string) bool
}

// classifierRules is the fixed priority order:
// brand > attraction/ticket > competitor > discovery > category > fallback.
// The order is load-bearing; do not reorder without revisiting every
// campaign whose keywords match more than one rule.
var classifierRules = []classifierRule{
	{CategoryBrand, func(kw, brand string) bool {
		return brand != "" && strings.Contains(kw, brand)
	}},
	{CategoryAttraction, matchAny("ticket", "tickets", "entry", "admission", "skip the line", "fast track")},
	{CategoryCompetitor, matchAny(" vs ", "alternative", "alternatives", "better than", "compared")},
	{CategoryDiscovery, matchAny("things to do", "what to do", "places to visit", "places to see", "where to go", "hidden gems")},
	{CategoryCategory, matchAny("tour", "cruise", "museum", "excursion", "day trip", "experience", "activity", "activities", "attraction")},
	{CategoryGeneric, func(string, string) bool { return true }},
}

func matchAny(terms ...string) func(keyword, brand string) bool {
	return func(kw, _ string) bool {
		for _, t := range terms {
			if strings.Contains(kw, t) {
				return true
			}
		}
		return false
	}
}

// Classify returns the label of the first rule matching the keyword.
// The brand token is the site's first host label (e.g. "romewalks" for
// romewalks.example.com); an empty brand disables the brand rule.
func Classify(keyword, brand string) string {
	kw := strings.ToLower(keyword)
	for _, r := range classifierRules {
		if r.Match(kw, brand) {
			return r.Label
		}
	}
	return CategoryGeneric
}

// BrandToken extracts the brand term from a site identifier: the first
// dot-separated label, lowercased. "romewalks.example.com" -> "romewalks".
func BrandToken(siteID string) string {
	host := strings.ToLower(siteID)
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	// single-character tokens match too aggressively
	if len(host) < 3 {
		return ""
	}
	return host
}
