// Package analysis classifies free text against keyword taxonomies and
// scores the severity of a detected theme. Every function here is pure and
// total: no input makes them fail, and "no match" is a normal result.
package analysis

import (
	"strings"

	"github.com/edgard/mindfulbot/internal/keywords"
)

// CountMatches returns the total number of non-overlapping occurrences of
// every keyword in lowerText. Occurrences of distinct keywords are counted
// independently, so overlapping spans of different keywords all count.
// lowerText must already be lower-cased; keywords are expected lower-cased too.
func CountMatches(lowerText string, kws []string) int {
	if lowerText == "" {
		return 0
	}
	total := 0
	for _, kw := range kws {
		if kw == "" {
			continue
		}
		total += strings.Count(lowerText, kw)
	}
	return total
}

// Classify returns the taxonomy category with the most keyword hits in text,
// provided that count reaches minMatches. Ties go to the category defined
// first. The boolean is false when nothing qualifies.
func Classify(text string, taxonomy keywords.Taxonomy, minMatches int) (string, bool) {
	lower := strings.ToLower(text)
	if lower == "" {
		return "", false
	}

	best, bestCount := "", 0
	for _, category := range taxonomy {
		count := CountMatches(lower, category.Keywords)
		// strict comparison keeps the earliest category on ties
		if count > bestCount {
			best, bestCount = category.Name, count
		}
	}

	if bestCount == 0 || bestCount < minMatches {
		return "", false
	}
	return best, true
}
