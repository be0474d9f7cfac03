package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/mindfulbot/internal/database"
	"github.com/edgard/mindfulbot/internal/keywords"
	"github.com/edgard/mindfulbot/internal/report"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func userMessage(content string, ts time.Time, theme, mood string) *database.Message {
	m := &database.Message{
		ID:             uuid.NewString(),
		ConversationID: "c1",
		Content:        content,
		Sender:         database.SenderUser,
		Timestamp:      ts,
	}
	if theme != "" || mood != "" {
		m.Analysis = &database.MessageAnalysis{Theme: theme, Mood: mood}
	}
	return m
}

func botMessage(ts time.Time) *database.Message {
	return &database.Message{
		ID:             uuid.NewString(),
		ConversationID: "c1",
		Content:        "reply",
		Sender:         database.SenderBot,
		Timestamp:      ts,
	}
}

func seed(t *testing.T, store database.Store, messages ...*database.Message) {
	t.Helper()
	for _, m := range messages {
		require.NoError(t, store.Append(context.Background(), m))
	}
}

func TestRecompute_EmptyStore(t *testing.T) {
	t.Parallel()

	agg := report.NewAggregator(database.NewMemoryStore(nil, database.WithClock(clock)), clock, nil)

	summary, err := agg.Recompute(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.MessageCount)
	assert.Empty(t, summary.MoodCounts)
	assert.Empty(t, summary.ThemeCounts)
	assert.True(t, summary.WindowStart.Equal(fixedNow))
	assert.False(t, summary.HasFullWindow)
}

func TestRecompute_CountsAndOrdering(t *testing.T) {
	t.Parallel()

	store := database.NewMemoryStore(nil, database.WithClock(clock))
	base := fixedNow.Add(-3 * 24 * time.Hour)
	seed(t, store,
		userMessage("a", base, "", "Sad"),
		botMessage(base),
		userMessage("b", base.Add(time.Hour), "Anxiety", "Happy"),
		botMessage(base.Add(time.Hour)),
		userMessage("c", base.Add(2*time.Hour), "Depression", "Happy"),
		userMessage("d", base.Add(3*time.Hour), "Depression", "Sad"),
		userMessage("e", base.Add(4*time.Hour), "Anxiety", "Angry"),
		userMessage("f", base.Add(5*time.Hour), "", ""),
	)

	agg := report.NewAggregator(store, clock, nil)
	summary, err := agg.Recompute(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, 8, summary.MessageCount)
	// Sad and Happy tie at 2; Sad was seen first.
	assert.Equal(t, []report.CategoryCount{
		{Name: "Sad", Count: 2, Percent: 40},
		{Name: "Happy", Count: 2, Percent: 40},
		{Name: "Angry", Count: 1, Percent: 20},
	}, summary.MoodCounts)
	assert.Equal(t, []report.CategoryCount{
		{Name: "Anxiety", Count: 2, Percent: 50},
		{Name: "Depression", Count: 2, Percent: 50},
	}, summary.ThemeCounts)
	assert.True(t, summary.WindowStart.Equal(base))
	assert.False(t, summary.HasFullWindow)
	assert.Equal(t, "Sad", summary.DominantMood())
	assert.Equal(t, "Anxiety", summary.DominantTheme())
}

func TestRecompute_Idempotent(t *testing.T) {
	t.Parallel()

	store := database.NewMemoryStore(nil, database.WithClock(clock))
	seed(t, store,
		userMessage("a", fixedNow.Add(-time.Hour), "Stress", "Overwhelmed"),
		botMessage(fixedNow),
	)
	agg := report.NewAggregator(store, clock, nil)

	first, err := agg.Recompute(context.Background(), "c1")
	require.NoError(t, err)
	second, err := agg.Recompute(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummarize_FullWindow(t *testing.T) {
	t.Parallel()

	messages := []database.Message{
		*userMessage("old", fixedNow.Add(-7*24*time.Hour), "", "Happy"),
		*userMessage("new", fixedNow, "", "Happy"),
	}
	summary := report.Summarize("c1", messages, fixedNow)
	assert.True(t, summary.HasFullWindow)

	summary = report.Summarize("c1", messages[1:], fixedNow)
	assert.False(t, summary.HasFullWindow)
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	rec := keywords.Default().Recommendations

	tests := []struct {
		name     string
		summary  report.Summary
		expected string
	}{
		{
			name:     "no dominant categories",
			summary:  report.Summary{MessageCount: 4},
			expected: rec.Empty,
		},
		{
			name:     "known mood and theme",
			summary:  report.Summary{MoodCounts: []report.CategoryCount{{Name: "Anxious", Count: 1}}, ThemeCounts: []report.CategoryCount{{Name: "Loneliness", Count: 1}}},
			expected: rec.Intro + rec.Moods["Anxious"] + rec.Themes["Loneliness"] + rec.Outro,
		},
		{
			name:     "mood without entry uses default",
			summary:  report.Summary{MoodCounts: []report.CategoryCount{{Name: "Relaxed", Count: 3}}},
			expected: rec.Intro + rec.DefaultMood + rec.Outro,
		},
		{
			name:     "theme only",
			summary:  report.Summary{ThemeCounts: []report.CategoryCount{{Name: "Depression", Count: 2}}},
			expected: rec.Intro + rec.Themes["Depression"] + rec.Outro,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, report.Recommend(tt.summary, rec))
		})
	}
}

func TestFormatText(t *testing.T) {
	t.Parallel()

	rec := keywords.Default().Recommendations

	empty := report.FormatText(report.Build(report.Summary{WindowStart: fixedNow}, rec))
	assert.Contains(t, empty, "Not enough data yet")

	summary := report.Summary{
		MessageCount: 6,
		MoodCounts:   []report.CategoryCount{{Name: "Happy", Count: 2, Percent: 67}, {Name: "Sad", Count: 1, Percent: 33}},
		WindowStart:  fixedNow.Add(-2 * 24 * time.Hour),
	}
	text := report.FormatText(report.Build(summary, rec))

	assert.Contains(t, text, "Based on your 6 messages over the past 7 days")
	assert.Contains(t, text, "Dominant mood: Happy")
	assert.Contains(t, text, "Mental health focus: N/A")
	assert.Contains(t, text, "- Happy: 67%")
	assert.Contains(t, text, "- Sad: 33%")
	assert.NotContains(t, text, "Mental health indicators")
	assert.Contains(t, text, "less than a full week")
	assert.Contains(t, text, rec.Moods["Happy"])
}
