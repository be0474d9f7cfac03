// Package report derives the rolling weekly summary of a conversation from
// the message store and renders it for display.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/edgard/mindfulbot/internal/database"
)

// CategoryCount is the number of analysed messages attributed to one category.
type CategoryCount struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Summary is the weekly aggregate of one conversation. It is rebuilt from
// the store on every call and never updated in place.
type Summary struct {
	ConversationID string          `json:"conversationId"`
	MessageCount   int             `json:"messageCount"`
	MoodCounts     []CategoryCount `json:"moodCounts"`
	ThemeCounts    []CategoryCount `json:"themeCounts"`
	WindowStart    time.Time       `json:"windowStart"`
	HasFullWindow  bool            `json:"hasFullWindow"`
}

// DominantMood returns the most frequent mood, or "" when none was detected.
func (s Summary) DominantMood() string {
	return dominant(s.MoodCounts)
}

// DominantTheme returns the most frequent theme, or "" when none was detected.
func (s Summary) DominantTheme() string {
	return dominant(s.ThemeCounts)
}

func dominant(counts []CategoryCount) string {
	if len(counts) == 0 {
		return ""
	}
	return counts[0].Name
}

// Aggregator computes summaries from a message store.
type Aggregator struct {
	store  database.Store
	now    func() time.Time
	logger *slog.Logger
}

// NewAggregator returns an Aggregator over store. A nil clock means time.Now.
func NewAggregator(store database.Store, now func() time.Time, logger *slog.Logger) *Aggregator {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{store: store, now: now, logger: logger.With("component", "report")}
}

// Recompute reads every retained message of the conversation and derives a
// fresh Summary. It never writes to the store.
func (a *Aggregator) Recompute(ctx context.Context, conversationID string) (Summary, error) {
	messages, err := a.store.LoadAll(ctx, conversationID)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load messages for report: %w", err)
	}

	summary := Summarize(conversationID, messages, a.now())
	a.logger.DebugContext(ctx, "Weekly summary recomputed",
		"conversation_id", conversationID,
		"messages", summary.MessageCount,
		"moods", len(summary.MoodCounts),
		"themes", len(summary.ThemeCounts))
	return summary, nil
}

// Summarize derives a Summary from messages as of now. Category counts are
// sorted by count, descending, with ties kept in first-seen order.
func Summarize(conversationID string, messages []database.Message, now time.Time) Summary {
	moods := newCounter()
	themes := newCounter()
	windowStart := now

	for i, m := range messages {
		if i == 0 || m.Timestamp.Before(windowStart) {
			windowStart = m.Timestamp
		}
		if m.Analysis == nil {
			continue
		}
		if m.Analysis.Mood != "" {
			moods.add(m.Analysis.Mood)
		}
		if m.Analysis.Theme != "" {
			themes.add(m.Analysis.Theme)
		}
	}

	return Summary{
		ConversationID: conversationID,
		MessageCount:   len(messages),
		MoodCounts:     moods.sorted(),
		ThemeCounts:    themes.sorted(),
		WindowStart:    windowStart,
		HasFullWindow:  now.Sub(windowStart) >= database.RetentionWindow,
	}
}

// counter tallies names while remembering first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, seen := c.counts[name]; !seen {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) sorted() []CategoryCount {
	total := 0
	out := make([]CategoryCount, 0, len(c.order))
	for _, name := range c.order {
		total += c.counts[name]
		out = append(out, CategoryCount{Name: name, Count: c.counts[name]})
	}
	for i := range out {
		out[i].Percent = int(math.Round(float64(out[i].Count) * 100 / float64(total)))
	}

	slices.SortStableFunc(out, func(a, b CategoryCount) int {
		return b.Count - a.Count
	})
	return out
}
