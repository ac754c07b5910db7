package search

import "github.com/kamusis/patterns-cli/internal/catalog"

// Reasons a topic appears in a result list.
const (
	WhyFuzzy   = "fuzzy"
	WhyKeyword = "keyword"
	WhyPreview = "preview"
)

// FieldMatch is one accepted field value for a topic.
type FieldMatch struct {
	Field string
	Value string
	Score float64
}

// Result is one ranked topic. Lower Score is a better match. Score is the
// product of the field scores, so even an exact field hit (FieldMatch.Score 0)
// leaves a small positive topic score.
// Topic points into the catalog the matcher was built from.
type Result struct {
	Topic   *catalog.Topic
	Score   float64
	Why     string
	Matches []FieldMatch
}

// Response is what a search box shows for a query: ranked results plus
// keyword-triggered suggestions.
type Response struct {
	Query       string
	Results     []Result
	Suggestions []*catalog.Topic
}
