// Package response composes the templated bot reply for an analysed user message.
package response

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/edgard/mindfulbot/internal/analysis"
	"github.com/edgard/mindfulbot/internal/keywords"
)

const (
	paragraphBreak = "\n\n"
	templateSuffix = " "
	activitySuffix = ". "
)

// Reply is a composed response broken into its fragments. Empty fragments
// were skipped.
type Reply struct {
	Acknowledgment string
	Severity       keywords.Severity
	Template       string
	Energy         keywords.Energy
	Activity       string
	FollowUpKind   keywords.FollowUpKind
	FollowUp       string
}

// Text joins the fragments into the displayed reply: the acknowledgment and
// theme template inline, the activity suggestion and follow-up question each
// in their own paragraph.
func (r Reply) Text(activityLeadIn string) string {
	var b strings.Builder
	b.WriteString(r.Acknowledgment)
	if r.Template != "" {
		b.WriteString(r.Template)
		b.WriteString(templateSuffix)
	}
	if r.Activity != "" {
		b.WriteString(paragraphBreak)
		b.WriteString(activityLeadIn)
		b.WriteString(r.Activity)
		b.WriteString(activitySuffix)
	}
	b.WriteString(paragraphBreak)
	b.WriteString(r.FollowUp)
	return b.String()
}

// Generator picks reply fragments at random from the keyword tables.
// It is safe for concurrent use.
type Generator struct {
	tables *keywords.Tables

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from rng. A nil rng gets a
// time-seeded source.
func NewGenerator(tables *keywords.Tables, rng *rand.Rand) *Generator {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return &Generator{tables: tables, rng: rng}
}

// NewSeededGenerator returns a Generator whose choices are fully determined by seed.
func NewSeededGenerator(tables *keywords.Tables, seed uint64) *Generator {
	return NewGenerator(tables, rand.New(rand.NewPCG(seed, seed)))
}

// Compose builds the reply fragments for userText. Severity is scored on
// userText for the detected theme. A theme without templates for its band
// contributes nothing.
func (g *Generator) Compose(userText string, result analysis.Result) Reply {
	reply := Reply{Acknowledgment: g.pick(g.tables.Acknowledgments)}

	if result.Theme != "" {
		reply.Severity = analysis.Score(userText, result.Theme, g.tables)
		reply.Template = g.pick(g.tables.TemplatesFor(result.Theme, reply.Severity))
	}

	if result.Mood != "" {
		reply.Energy = g.tables.EnergyFor(result.Mood)
		reply.Activity = g.pick(g.tables.Activities[reply.Energy])
	}

	switch {
	case result.Theme != "":
		reply.FollowUpKind = keywords.FollowUpSupport
	case result.Mood != "":
		reply.FollowUpKind = keywords.FollowUpProgress
	default:
		reply.FollowUpKind = keywords.FollowUpGeneral
	}
	reply.FollowUp = g.pick(g.tables.FollowUps[reply.FollowUpKind])

	return reply
}

// Generate returns the displayed reply text for userText.
func (g *Generator) Generate(userText string, result analysis.Result) string {
	return g.Compose(userText, result).Text(g.tables.ActivityLeadIn)
}

func (g *Generator) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	g.mu.Lock()
	i := g.rng.IntN(len(pool))
	g.mu.Unlock()
	return pool[i]
}
