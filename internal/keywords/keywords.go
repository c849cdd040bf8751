// Package keywords derives a bounded keyword set from free text by plain
// frequency ranking over alphabetic tokens.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultLimit caps how many keywords one abstract contributes.
const DefaultLimit = 10

const minTokenLength = 3

var tokenExpr = regexp.MustCompile(`[a-zA-Z]+`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "up": {}, "about": {}, "into": {}, "through": {}, "during": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"we": {}, "our": {}, "use": {}, "using": {}, "based": {}, "approach": {},
	"method": {}, "paper": {}, "propose": {}, "proposed": {}, "show": {},
}

// Extractor ranks tokens by frequency with a configurable cap and extra
// stop words on top of the built-in set.
type Extractor struct {
	limit int
	extra map[string]struct{}
}

// New builds an Extractor; a non-positive limit falls back to DefaultLimit.
func New(limit int, extraStopWords ...string) *Extractor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	extra := make(map[string]struct{}, len(extraStopWords))
	for _, w := range extraStopWords {
		extra[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{limit: limit, extra: extra}
}

// Extract returns at most limit distinct lowercase keywords ordered by
// descending frequency, ties broken by first appearance. Empty input yields
// no keywords.
func (e *Extractor) Extract(text string) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	var order int

	for _, token := range tokenExpr.FindAllString(strings.ToLower(text), -1) {
		if len(token) < minTokenLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, stop := e.extra[token]; stop {
			continue
		}
		if _, seen := counts[token]; !seen {
			firstSeen[token] = order
			order++
		}
		counts[token]++
	}

	ranked := make([]string, 0, len(counts))
	for token := range counts {
		ranked = append(ranked, token)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if len(ranked) > e.limit {
		ranked = ranked[:e.limit]
	}
	return ranked
}
