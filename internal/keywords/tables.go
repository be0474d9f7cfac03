// Package keywords holds the static tables that drive classification and
// reply composition: the theme and mood taxonomies, severity word lists,
// reply templates, activity and follow-up pools, and report recommendations.
//
// Tables are loaded once at startup and shared by pointer. Nothing mutates
// them after Load or Default returns.
package keywords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidTables is returned when a table set fails validation.
var ErrInvalidTables = errors.New("invalid keyword tables")

var validate = validator.New()

// Category is one named entry of a taxonomy.
type Category struct {
	Name     string   `yaml:"name"     validate:"required"`
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,required"`
}

// Taxonomy is an ordered list of categories. Order matters: when two
// categories score the same, the one defined first wins.
type Taxonomy []Category

// Find returns the category with the given name, compared case-insensitively.
func (t Taxonomy) Find(name string) (Category, bool) {
	for _, c := range t {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// Severity is the intensity band of a detected theme.
type Severity string

const (
	Mild     Severity = "mild"
	Moderate Severity = "moderate"
	Severe   Severity = "severe"
)

// Energy groups moods for activity suggestions.
type Energy string

const (
	EnergyLow      Energy = "low"
	EnergyModerate Energy = "moderate"
	EnergyHigh     Energy = "high"
)

// FollowUpKind selects the pool a closing question is drawn from.
type FollowUpKind string

const (
	FollowUpGeneral  FollowUpKind = "general"
	FollowUpProgress FollowUpKind = "progress"
	FollowUpSupport  FollowUpKind = "support"
)

var (
	allSeverities    = []Severity{Mild, Moderate, Severe}
	allEnergies      = []Energy{EnergyLow, EnergyModerate, EnergyHigh}
	allFollowUpKinds = []FollowUpKind{FollowUpGeneral, FollowUpProgress, FollowUpSupport}
)

// Recommendations feed the closing paragraph of the weekly report.
type Recommendations struct {
	Empty       string            `yaml:"empty"        validate:"required"`
	Intro       string            `yaml:"intro"        validate:"required"`
	Outro       string            `yaml:"outro"`
	DefaultMood string            `yaml:"default_mood"`
	Moods       map[string]string `yaml:"moods"`
	Themes      map[string]string `yaml:"themes"`
}

// Tables is the complete, versioned configuration for analysis and replies.
type Tables struct {
	Version string `yaml:"version" validate:"required"`

	Themes         Taxonomy `yaml:"themes"          validate:"required,min=1,dive"`
	Moods          Taxonomy `yaml:"moods"           validate:"required,min=1,dive"`
	ThemeThreshold int      `yaml:"theme_threshold" validate:"min=1"`
	MoodThreshold  int      `yaml:"mood_threshold"  validate:"min=1"`

	Intensifiers  []string `yaml:"intensifiers"   validate:"dive,required"`
	UrgentPhrases []string `yaml:"urgent_phrases" validate:"dive,required"`

	Acknowledgments []string `yaml:"acknowledgments" validate:"required,min=1,dive,required"`

	// Templates maps a theme name to reply templates per severity band. It may
	// cover only some themes; themes without templates get no theme fragment.
	Templates map[string]map[Severity][]string `yaml:"templates"`

	MoodEnergy     map[string]Energy         `yaml:"mood_energy"`
	DefaultEnergy  Energy                    `yaml:"default_energy"   validate:"required"`
	ActivityLeadIn string                    `yaml:"activity_lead_in" validate:"required"`
	Activities     map[Energy][]string       `yaml:"activities"       validate:"required"`
	FollowUps      map[FollowUpKind][]string `yaml:"follow_ups"       validate:"required"`

	Recommendations Recommendations `yaml:"recommendations"`
}

// Validate checks struct constraints and the cross-table rules validator tags cannot express.
func (t *Tables) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: tables are nil", ErrInvalidTables)
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTables, err)
	}

	if err := checkUniqueNames("theme", t.Themes); err != nil {
		return err
	}
	if err := checkUniqueNames("mood", t.Moods); err != nil {
		return err
	}

	if !isEnergy(t.DefaultEnergy) {
		return fmt.Errorf("%w: unknown default energy %q", ErrInvalidTables, t.DefaultEnergy)
	}
	for mood, e := range t.MoodEnergy {
		if !isEnergy(e) {
			return fmt.Errorf("%w: mood %q mapped to unknown energy %q", ErrInvalidTables, mood, e)
		}
	}
	for _, e := range allEnergies {
		if len(nonEmpty(t.Activities[e])) == 0 {
			return fmt.Errorf("%w: no activities for %s energy", ErrInvalidTables, e)
		}
	}
	for _, k := range allFollowUpKinds {
		if len(nonEmpty(t.FollowUps[k])) == 0 {
			return fmt.Errorf("%w: no %s follow-up questions", ErrInvalidTables, k)
		}
	}

	for theme, bands := range t.Templates {
		if _, ok := t.Themes.Find(theme); !ok {
			return fmt.Errorf("%w: templates defined for unknown theme %q", ErrInvalidTables, theme)
		}
		for band := range bands {
			if !isSeverity(band) {
				return fmt.Errorf("%w: theme %q has templates for unknown severity %q", ErrInvalidTables, theme, band)
			}
		}
	}
	return nil
}

// TemplatesFor returns the reply templates for a theme at a severity band,
// or nil when none are configured.
func (t *Tables) TemplatesFor(theme string, band Severity) []string {
	for name, bands := range t.Templates {
		if strings.EqualFold(name, theme) {
			return bands[band]
		}
	}
	return nil
}

// EnergyFor returns the configured energy bucket of a mood, falling back to DefaultEnergy.
func (t *Tables) EnergyFor(mood string) Energy {
	for name, e := range t.MoodEnergy {
		if strings.EqualFold(name, mood) {
			return e
		}
	}
	return t.DefaultEnergy
}

// Normalize returns a deep copy with every matchable string lower-cased and
// trimmed, so matching only needs to lower-case the input text.
func (t *Tables) Normalize() *Tables {
	out := *t
	out.Themes = normalizeTaxonomy(t.Themes)
	out.Moods = normalizeTaxonomy(t.Moods)
	out.Intensifiers = lowerAll(t.Intensifiers)
	out.UrgentPhrases = lowerAll(t.UrgentPhrases)
	out.Acknowledgments = append([]string(nil), t.Acknowledgments...)

	out.Templates = make(map[string]map[Severity][]string, len(t.Templates))
	for theme, bands := range t.Templates {
		copied := make(map[Severity][]string, len(bands))
		for band, pool := range bands {
			copied[Severity(strings.ToLower(string(band)))] = append([]string(nil), pool...)
		}
		out.Templates[theme] = copied
	}

	out.MoodEnergy = make(map[string]Energy, len(t.MoodEnergy))
	for mood, e := range t.MoodEnergy {
		out.MoodEnergy[mood] = Energy(strings.ToLower(string(e)))
	}
	out.DefaultEnergy = Energy(strings.ToLower(string(t.DefaultEnergy)))

	out.Activities = make(map[Energy][]string, len(t.Activities))
	for e, pool := range t.Activities {
		out.Activities[Energy(strings.ToLower(string(e)))] = append([]string(nil), pool...)
	}
	out.FollowUps = make(map[FollowUpKind][]string, len(t.FollowUps))
	for k, pool := range t.FollowUps {
		out.FollowUps[FollowUpKind(strings.ToLower(string(k)))] = append([]string(nil), pool...)
	}

	out.Recommendations.Moods = copyStringMap(t.Recommendations.Moods)
	out.Recommendations.Themes = copyStringMap(t.Recommendations.Themes)
	return &out
}

func normalizeTaxonomy(in Taxonomy) Taxonomy {
	out := make(Taxonomy, 0, len(in))
	for _, c := range in {
		out = append(out, Category{Name: strings.TrimSpace(c.Name), Keywords: lowerAll(c.Keywords)})
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

func nonEmpty(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func checkUniqueNames(kind string, t Taxonomy) error {
	seen := make(map[string]struct{}, len(t))
	for _, c := range t {
		key := strings.ToLower(c.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate %s category %q", ErrInvalidTables, kind, c.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func isEnergy(e Energy) bool {
	for _, known := range allEnergies {
		if e == known {
			return true
		}
	}
	return false
}

func isSeverity(s Severity) bool {
	for _, known := range allSeverities {
		if s == known {
			return true
		}
	}
	return false
}
