// Package trainer serves pattern-recognition prompts and reflex quizzes.
package trainer

import (
	_ "embed"
	"fmt"
	"math/rand"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

//go:embed data/trainer.yaml
var defaultData []byte

// Prompt is a problem statement whose pattern the learner must name.
type Prompt struct {
	ID        string   `yaml:"id"`
	PatternID string   `yaml:"pattern"`
	Statement string   `yaml:"statement"`
	Signals   []string `yaml:"signals"`
	Answer    string   `yaml:"answer"`
}

// Question is a multiple-choice quiz item. Options and Answer are topic ids.
type Question struct {
	ID          string   `yaml:"id"`
	Question    string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Answer      string   `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// Deck is the static set of trainer prompts and quiz questions.
type Deck struct {
	Prompts   []Prompt   `yaml:"prompts"`
	Questions []Question `yaml:"quiz"`
}

var (
	defaultOnce sync.Once
	defaultDeck *Deck
)

// Default returns the built-in deck.
func Default() *Deck {
	defaultOnce.Do(func() {
		d, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("embedded trainer deck is invalid: %v", err))
		}
		defaultDeck = d
	})
	return defaultDeck
}

// Parse decodes a YAML deck.
func Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("invalid trainer YAML: %w", err)
	}
	if len(d.Prompts) == 0 {
		return nil, fmt.Errorf("trainer deck has no prompts")
	}
	return &d, nil
}

// NextPrompt picks a random prompt other than excludeID. With nothing else to
// choose from it returns the first prompt.
func (d *Deck) NextPrompt(excludeID string, rnd *rand.Rand) Prompt {
	available := make([]Prompt, 0, len(d.Prompts))
	for _, p := range d.Prompts {
		if p.ID != excludeID {
			available = append(available, p)
		}
	}
	if len(available) == 0 {
		return d.Prompts[0]
	}
	return available[rnd.Intn(len(available))]
}

// Validate checks that every pattern id the deck mentions exists in cat.
func (d *Deck) Validate(cat *catalog.Catalog) []error {
	var errs []error
	known := func(id string) bool {
		_, ok := cat.Lookup(id)
		return ok
	}
	for _, p := range d.Prompts {
		if !known(p.PatternID) {
			errs = append(errs, fmt.Errorf("prompt %s references unknown topic %q", p.ID, p.PatternID))
		}
	}
	for _, q := range d.Questions {
		answerListed := false
		for _, o := range q.Options {
			if !known(o) {
				errs = append(errs, fmt.Errorf("question %s option references unknown topic %q", q.ID, o))
			}
			if o == q.Answer {
				answerListed = true
			}
		}
		if !answerListed {
			errs = append(errs, fmt.Errorf("question %s answer %q is not among its options", q.ID, q.Answer))
		}
	}
	return errs
}
