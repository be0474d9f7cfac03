package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edgard/mindfulbot/internal/analysis"
	"github.com/edgard/mindfulbot/internal/keywords"
)

func TestCountMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		keywords []string
		expected int
	}{
		{name: "empty text", text: "", keywords: []string{"sad"}, expected: 0},
		{name: "no keywords", text: "sad", keywords: nil, expected: 0},
		{name: "repeated keyword", text: "sad sad sad", keywords: []string{"sad"}, expected: 3},
		{name: "overlapping distinct keywords", text: "stressed", keywords: []string{"stress", "stressed"}, expected: 2},
		{name: "substring inside a word", text: "unhappy", keywords: []string{"happy"}, expected: 1},
		{name: "multi-word keyword", text: "i have no energy and no energy left", keywords: []string{"no energy"}, expected: 2},
		{name: "empty keyword ignored", text: "abc", keywords: []string{""}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, analysis.CountMatches(tt.text, tt.keywords))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tables := keywords.Default()

	tests := []struct {
		name      string
		text      string
		taxonomy  keywords.Taxonomy
		threshold int
		expected  string
		ok        bool
	}{
		{name: "empty text", text: "", taxonomy: tables.Themes, threshold: 3},
		{name: "single theme hit below threshold", text: "I am anxious", taxonomy: tables.Themes, threshold: 3},
		{name: "two theme hits below threshold", text: "anxious and nervous", taxonomy: tables.Themes, threshold: 3},
		{name: "three hits of one theme", text: "I am anxious anxious anxious", taxonomy: tables.Themes, threshold: 3, expected: "Anxiety", ok: true},
		{name: "case insensitive", text: "LONELY and ALONE, so Isolated", taxonomy: tables.Themes, threshold: 3, expected: "Loneliness", ok: true},
		{name: "mood at threshold", text: "I feel happy happy", taxonomy: tables.Moods, threshold: 2, expected: "Happy", ok: true},
		{name: "mood below threshold", text: "I feel happy", taxonomy: tables.Moods, threshold: 2},
		{name: "no keywords at all", text: "the weather is mild today", taxonomy: tables.Moods, threshold: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := analysis.Classify(tt.text, tt.taxonomy, tt.threshold)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassify_TieGoesToEarliestCategory(t *testing.T) {
	t.Parallel()

	first := keywords.Category{Name: "First", Keywords: []string{"foo"}}
	second := keywords.Category{Name: "Second", Keywords: []string{"bar"}}
	text := "foo bar foo bar foo bar"

	for i := 0; i < 50; i++ {
		got, ok := analysis.Classify(text, keywords.Taxonomy{first, second}, 3)
		assert.True(t, ok)
		assert.Equal(t, "First", got)

		got, ok = analysis.Classify(text, keywords.Taxonomy{second, first}, 3)
		assert.True(t, ok)
		assert.Equal(t, "Second", got)
	}
}

func TestClassify_DefaultTaxonomyTieBreak(t *testing.T) {
	t.Parallel()

	// "stress" is listed under both Anxiety and Stress; Anxiety is defined first.
	got, ok := analysis.Classify("stress stress stress", keywords.Default().Themes, 3)
	assert.True(t, ok)
	assert.Equal(t, "Anxiety", got)
}

func TestClassify_VeryLongInput(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("nothing to see here ", 50_000) + "sad sad sad"
	got, ok := analysis.Classify(text, keywords.Default().Themes, 3)
	assert.True(t, ok)
	assert.Equal(t, "Depression", got)
}

func TestBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score    int
		expected keywords.Severity
	}{
		{score: 0, expected: keywords.Mild},
		{score: 2, expected: keywords.Mild},
		{score: 3, expected: keywords.Moderate},
		{score: 4, expected: keywords.Moderate},
		{score: 5, expected: keywords.Severe},
		{score: 12, expected: keywords.Severe},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, analysis.Band(tt.score), "score %d", tt.score)
	}
}

func TestSeverityScore(t *testing.T) {
	t.Parallel()

	tables := keywords.Default()

	tests := []struct {
		name     string
		text     string
		theme    string
		expected int
	}{
		{name: "theme keywords only", text: "anxious anxious anxious", theme: "Anxiety", expected: 3},
		{name: "intensifier counts once", text: "very very very", theme: "Anxiety", expected: 1},
		{name: "distinct intensifiers add up", text: "very extremely", theme: "Anxiety", expected: 2},
		{name: "urgent phrase adds two", text: "i need help", theme: "Anxiety", expected: 2},
		{name: "unknown theme adds no hits", text: "very anxious", theme: "Grief", expected: 1},
		{name: "case insensitive", text: "I NEED HELP, I am ANXIOUS", theme: "anxiety", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, analysis.SeverityScore(tt.text, tt.theme, tables))
		})
	}
}

func TestScore_Bands(t *testing.T) {
	t.Parallel()

	tables := keywords.Default()

	assert.Equal(t, keywords.Moderate, analysis.Score("I am anxious anxious anxious", "Anxiety", tables))
	assert.Equal(t, keywords.Severe, analysis.Score("I am very anxious anxious anxious and need help", "Anxiety", tables))
	assert.Equal(t, keywords.Mild, analysis.Score("a little worried", "Anxiety", tables))
}

func TestScore_UrgentPhraseNeverLowersBand(t *testing.T) {
	t.Parallel()

	tables := keywords.Default()
	rank := map[keywords.Severity]int{keywords.Mild: 0, keywords.Moderate: 1, keywords.Severe: 2}

	inputs := []string{
		"",
		"a bit anxious",
		"anxious anxious anxious",
		"really very anxious and worried",
		"sad and tired",
		"hopeless",
	}

	for _, input := range inputs {
		for _, phrase := range tables.UrgentPhrases {
			for _, theme := range []string{"Anxiety", "Depression", "Loneliness"} {
				before := analysis.Score(input, theme, tables)
				after := analysis.Score(input+" "+phrase, theme, tables)
				assert.GreaterOrEqual(t, rank[after], rank[before], "input %q phrase %q theme %s", input, phrase, theme)
			}
		}
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	analyzer := analysis.NewAnalyzer(keywords.Default())

	tests := []struct {
		name     string
		text     string
		expected analysis.Result
	}{
		{name: "empty", text: "", expected: analysis.Result{}},
		{name: "mood only", text: "I feel happy happy", expected: analysis.Result{Mood: "Happy"}},
		{name: "theme", text: "I am anxious anxious anxious", expected: analysis.Result{Theme: "Anxiety", Mood: "Anxious"}},
		{name: "nothing detected", text: "what is for dinner", expected: analysis.Result{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := analyzer.Analyze(tt.text)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected == analysis.Result{}, got.IsZero())
		})
	}
}
