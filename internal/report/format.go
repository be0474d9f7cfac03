package report

import (
	"fmt"
	"strings"

	"github.com/edgard/mindfulbot/internal/keywords"
)

const (
	reportTitle  = "Your 7-Day Mental Health Report"
	notEnoughMsg = "Not enough data yet. Chat more to generate your report!"
	notAvailable = "N/A"
)

// Report is a Summary plus the derived fields shown to the user.
type Report struct {
	Summary
	DominantMood   string `json:"dominantMood,omitempty"`
	DominantTheme  string `json:"dominantTheme,omitempty"`
	Recommendation string `json:"recommendation"`
}

// Build attaches the dominant categories and the recommendation to s.
func Build(s Summary, rec keywords.Recommendations) Report {
	return Report{
		Summary:        s,
		DominantMood:   s.DominantMood(),
		DominantTheme:  s.DominantTheme(),
		Recommendation: Recommend(s, rec),
	}
}

// Recommend builds the recommendation paragraph from the dominant mood and
// theme. Moods without a dedicated entry fall back to DefaultMood; themes
// without one add nothing.
func Recommend(s Summary, rec keywords.Recommendations) string {
	mood, theme := s.DominantMood(), s.DominantTheme()
	if mood == "" && theme == "" {
		return rec.Empty
	}

	var b strings.Builder
	b.WriteString(rec.Intro)
	if mood != "" {
		if text, ok := lookupFold(rec.Moods, mood); ok {
			b.WriteString(text)
		} else {
			b.WriteString(rec.DefaultMood)
		}
	}
	if theme != "" {
		if text, ok := lookupFold(rec.Themes, theme); ok {
			b.WriteString(text)
		}
	}
	b.WriteString(rec.Outro)
	return b.String()
}

func lookupFold(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// FormatText renders r as plain text for chat transports.
func FormatText(r Report) string {
	var b strings.Builder
	b.WriteString(reportTitle)
	b.WriteString("\n\n")

	if r.MessageCount == 0 {
		b.WriteString(notEnoughMsg)
		return b.String()
	}

	fmt.Fprintf(&b, "Based on your %d messages over the past 7 days:\n", r.MessageCount)
	fmt.Fprintf(&b, "Total messages: %d\n", r.MessageCount)
	fmt.Fprintf(&b, "Dominant mood: %s\n", orNotAvailable(r.DominantMood))
	fmt.Fprintf(&b, "Mental health focus: %s\n", orNotAvailable(r.DominantTheme))
	if !r.HasFullWindow {
		fmt.Fprintf(&b, "Tracking since %s, less than a full week so far.\n", r.WindowStart.Format("Jan 2"))
	}

	writeCounts(&b, "Your moods", r.MoodCounts)
	writeCounts(&b, "Mental health indicators", r.ThemeCounts)

	b.WriteString("\nRecommendations:\n")
	b.WriteString(strings.TrimSpace(r.Recommendation))
	return b.String()
}

func writeCounts(b *strings.Builder, heading string, counts []CategoryCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", heading)
	for _, c := range counts {
		fmt.Fprintf(b, "- %s: %d%%\n", c.Name, c.Percent)
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
