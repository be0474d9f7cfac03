package analysis

import "github.com/edgard/mindfulbot/internal/keywords"

// Result holds the categories detected in a piece of text. Empty fields mean
// no category reached its threshold.
type Result struct {
	Theme string
	Mood  string
}

// IsZero reports whether nothing was detected.
func (r Result) IsZero() bool {
	return r.Theme == "" && r.Mood == ""
}

// Analyzer runs both taxonomies of a table set over text.
type Analyzer struct {
	tables *keywords.Tables
}

// NewAnalyzer returns an Analyzer bound to tables.
func NewAnalyzer(tables *keywords.Tables) *Analyzer {
	return &Analyzer{tables: tables}
}

// Tables returns the table set the analyzer was built with.
func (a *Analyzer) Tables() *keywords.Tables {
	return a.tables
}

// Analyze classifies text for theme and mood independently.
func (a *Analyzer) Analyze(text string) Result {
	theme, _ := Classify(text, a.tables.Themes, a.tables.ThemeThreshold)
	mood, _ := Classify(text, a.tables.Moods, a.tables.MoodThreshold)
	return Result{Theme: theme, Mood: mood}
}

// Severity scores text for a detected theme.
func (a *Analyzer) Severity(text, theme string) keywords.Severity {
	return Score(text, theme, a.tables)
}
