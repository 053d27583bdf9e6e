// Package match resolves short human-supplied strings to persisted
// entities: name lookups for projects, milestones and labels, identifier
// lookups for issues, and approximate matching of checklist lines inside
// markdown descriptions.
package match

import "strings"

// Name returns the index of the first candidate whose name contains the
// query, case-insensitively. First hit in fetch order wins; callers must
// not assume this is stable across API result ordering changes.
func Name(query string, names []string) (int, bool) {
	q := strings.ToLower(query)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			return i, true
		}
	}
	return 0, false
}

// Identifier reports whether query equals id case-insensitively.
// Identifiers are canonical keys, so no substring matching applies.
func Identifier(query, id string) bool {
	return strings.EqualFold(query, id)
}

// Score rates how well a query matches a candidate string using three
// tiers: exact match, containment ratio, then token overlap. The tiers
// and the acceptance threshold are deliberately kept together here so
// they stay independently testable and tunable.
func Score(query, candidate string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if q == c {
		return 1.0
	}
	if strings.Contains(c, q) || strings.Contains(q, c) {
		shorter, longer := len(q), len(c)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if longer == 0 {
			return 0
		}
		return float64(shorter) / float64(longer)
	}
	return tokenOverlap(q, c)
}

// tokenOverlap counts query words that appear as a substring of some
// candidate word (or vice versa), normalized by the larger word count.
func tokenOverlap(q, c string) float64 {
	qWords := strings.Fields(q)
	cWords := strings.Fields(c)
	if len(qWords) == 0 || len(cWords) == 0 {
		return 0
	}
	matched := 0
	for _, qw := range qWords {
		for _, cw := range cWords {
			if strings.Contains(cw, qw) || strings.Contains(qw, cw) {
				matched++
				break
			}
		}
	}
	denom := len(qWords)
	if len(cWords) > denom {
		denom = len(cWords)
	}
	return float64(matched) / float64(denom)
}
