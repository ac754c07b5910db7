package catalog

// MiniExample is a short worked example: a title plus ordered reasoning steps.
type MiniExample struct {
	Title string   `yaml:"title" json:"title"`
	Logic []string `yaml:"logic" json:"logic"`
}

// PracticeProblem is one exercise attached to a topic.
type PracticeProblem struct {
	Title  string `yaml:"title" json:"title"`
	Prompt string `yaml:"prompt" json:"prompt"`
	Link   string `yaml:"link,omitempty" json:"link,omitempty"`
}

// PracticeSet groups practice problems by difficulty.
type PracticeSet struct {
	Easy   []PracticeProblem `yaml:"easy,omitempty" json:"easy,omitempty"`
	Medium []PracticeProblem `yaml:"medium,omitempty" json:"medium,omitempty"`
	Hard   []PracticeProblem `yaml:"hard,omitempty" json:"hard,omitempty"`
}

// Example is the canonical problem used to introduce a topic.
type Example struct {
	Problem  string   `yaml:"problem" json:"problem"`
	Solution []string `yaml:"solution" json:"solution"`
}

// Complexity is the typical time/space cost of a topic's template.
type Complexity struct {
	Time  string `yaml:"time" json:"time"`
	Space string `yaml:"space" json:"space"`
}

// Topic describes one algorithmic pattern. Topics are never mutated after the
// catalog is built.
type Topic struct {
	ID            string        `yaml:"id" json:"id"`
	Title         string        `yaml:"title" json:"title"`
	Subtitle      string        `yaml:"subtitle" json:"subtitle"`
	Icon          string        `yaml:"icon,omitempty" json:"icon,omitempty"`
	WhatItIs      string        `yaml:"what_it_is" json:"what_it_is"`
	WhenUsed      []string      `yaml:"when_used" json:"when_used"`
	Template      []string      `yaml:"template" json:"template"`
	Example       Example       `yaml:"example" json:"example"`
	Keywords      []string      `yaml:"keywords" json:"keywords"`
	MiniExamples  []MiniExample `yaml:"mini_examples" json:"mini_examples"`
	Practice      PracticeSet   `yaml:"practice" json:"practice"`
	Complexity    *Complexity   `yaml:"complexity,omitempty" json:"complexity,omitempty"`
	Visualization string        `yaml:"visualization,omitempty" json:"visualization,omitempty"`
	VideoID       string        `yaml:"video_id,omitempty" json:"video_id,omitempty"`
}

// KeywordEntry maps one trigger keyword to the topics it suggests, in order.
type KeywordEntry struct {
	Keyword string   `yaml:"keyword" json:"keyword"`
	Topics  []string `yaml:"topics" json:"topics"`
}

// KeywordIndex is the ordered keyword -> topic id table used for suggestions.
type KeywordIndex []KeywordEntry

// Keywords returns the trigger keywords in table order.
func (k KeywordIndex) Keywords() []string {
	out := make([]string, 0, len(k))
	for _, e := range k {
		out = append(out, e.Keyword)
	}
	return out
}
