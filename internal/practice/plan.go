// Package practice builds daily practice plans and keeps their history.
package practice

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// ErrEmptyPool is returned when the catalog has no topics or no problems of a
// required difficulty.
var ErrEmptyPool = errors.New("no practice problems available")

// Entry is a practice problem tagged with the pattern it belongs to.
type Entry struct {
	catalog.PracticeProblem
	PatternID    string `json:"pattern_id"`
	PatternTitle string `json:"pattern_title"`
}

// PatternReminder is the pattern a plan asks the learner to review.
type PatternReminder struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	WhatItIs string   `json:"what_it_is"`
	WhenUsed []string `json:"when_used"`
}

// Plan is one generated practice set.
type Plan struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Pattern   PatternReminder `json:"pattern"`
	Easy      Entry           `json:"easy"`
	Medium    Entry           `json:"medium"`
}

// Generator draws plans from the catalog. It is not safe for concurrent use.
type Generator struct {
	topics  []catalog.Topic
	easy    []Entry
	medium  []Entry
	rnd     *rand.Rand
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator pools every easy and medium problem in cat.
func NewGenerator(cat *catalog.Catalog, rnd *rand.Rand) (*Generator, error) {
	g := &Generator{
		topics:  cat.Topics(),
		rnd:     rnd,
		entropy: ulid.Monotonic(rnd, 0),
		now:     time.Now,
	}
	for _, t := range g.topics {
		g.easy = append(g.easy, entries(t, t.Practice.Easy)...)
		g.medium = append(g.medium, entries(t, t.Practice.Medium)...)
	}
	if len(g.topics) == 0 || len(g.easy) == 0 || len(g.medium) == 0 {
		return nil, ErrEmptyPool
	}
	return g, nil
}

func entries(t catalog.Topic, problems []catalog.PracticeProblem) []Entry {
	out := make([]Entry, 0, len(problems))
	for _, p := range problems {
		out = append(out, Entry{PracticeProblem: p, PatternID: t.ID, PatternTitle: t.Title})
	}
	return out
}

// Next returns a fresh plan: a random pattern reminder, one easy and one
// medium problem. The three draws are independent.
func (g *Generator) Next() Plan {
	now := g.now().UTC()
	t := g.topics[g.rnd.Intn(len(g.topics))]
	return Plan{
		ID:        ulid.MustNew(ulid.Timestamp(now), g.entropy).String(),
		CreatedAt: now,
		Pattern: PatternReminder{
			ID:       t.ID,
			Title:    t.Title,
			WhatItIs: t.WhatItIs,
			WhenUsed: t.WhenUsed,
		},
		Easy:   g.easy[g.rnd.Intn(len(g.easy))],
		Medium: g.medium[g.rnd.Intn(len(g.medium))],
	}
}
