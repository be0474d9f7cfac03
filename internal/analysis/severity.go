package analysis

import (
	"strings"

	"github.com/edgard/mindfulbot/internal/keywords"
)

const (
	intensifierWeight = 1
	urgentWeight      = 2

	severeScore   = 5
	moderateScore = 3
)

// SeverityScore computes the raw intensity score of text for theme: one
// point per distinct intensifier present, two per distinct urgent phrase,
// plus the theme's own keyword hits. An unknown theme contributes no hits.
func SeverityScore(text, theme string, tables *keywords.Tables) int {
	lower := strings.ToLower(text)
	score := 0

	for _, word := range tables.Intensifiers {
		if word != "" && strings.Contains(lower, word) {
			score += intensifierWeight
		}
	}
	for _, phrase := range tables.UrgentPhrases {
		if phrase != "" && strings.Contains(lower, phrase) {
			score += urgentWeight
		}
	}

	if category, ok := tables.Themes.Find(theme); ok {
		score += CountMatches(lower, category.Keywords)
	}
	return score
}

// Band maps a raw score to its severity band.
func Band(score int) keywords.Severity {
	switch {
	case score >= severeScore:
		return keywords.Severe
	case score >= moderateScore:
		return keywords.Moderate
	default:
		return keywords.Mild
	}
}

// Score returns the severity band of text for an already detected theme.
func Score(text, theme string, tables *keywords.Tables) keywords.Severity {
	return Band(SeverityScore(text, theme, tables))
}
