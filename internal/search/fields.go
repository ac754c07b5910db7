package search

import "github.com/kamusis/patterns-cli/internal/catalog"

// Field names a searchable part of a topic. Values returns every string the
// field contributes; list fields are matched element by element.
type Field struct {
	Name   string
	Values func(t *catalog.Topic) []string
}

func one(s string) []string { return []string{s} }

var (
	FieldTitle    = Field{Name: "title", Values: func(t *catalog.Topic) []string { return one(t.Title) }}
	FieldSubtitle = Field{Name: "subtitle", Values: func(t *catalog.Topic) []string { return one(t.Subtitle) }}
	FieldWhatItIs = Field{Name: "what_it_is", Values: func(t *catalog.Topic) []string { return one(t.WhatItIs) }}
	FieldWhenUsed = Field{Name: "when_used", Values: func(t *catalog.Topic) []string { return t.WhenUsed }}
	FieldTemplate = Field{Name: "template", Values: func(t *catalog.Topic) []string { return t.Template }}
	FieldProblem  = Field{Name: "example.problem", Values: func(t *catalog.Topic) []string { return one(t.Example.Problem) }}
	FieldSolution = Field{Name: "example.solution", Values: func(t *catalog.Topic) []string { return t.Example.Solution }}
	FieldKeywords = Field{Name: "keywords", Values: func(t *catalog.Topic) []string { return t.Keywords }}

	FieldMiniExampleTitle = Field{Name: "mini_examples.title", Values: func(t *catalog.Topic) []string {
		out := make([]string, 0, len(t.MiniExamples))
		for _, m := range t.MiniExamples {
			out = append(out, m.Title)
		}
		return out
	}}
	FieldMiniExampleLogic = Field{Name: "mini_examples.logic", Values: func(t *catalog.Topic) []string {
		var out []string
		for _, m := range t.MiniExamples {
			out = append(out, m.Logic...)
		}
		return out
	}}
)

// FullFields is the field set of the main search page.
func FullFields() []Field {
	return []Field{
		FieldTitle,
		FieldSubtitle,
		FieldWhatItIs,
		FieldWhenUsed,
		FieldTemplate,
		FieldProblem,
		FieldSolution,
		FieldKeywords,
		FieldMiniExampleTitle,
		FieldMiniExampleLogic,
	}
}

// HeaderFields is the narrower field set of the header quick search.
func HeaderFields() []Field {
	return []Field{FieldTitle, FieldSubtitle, FieldKeywords}
}
