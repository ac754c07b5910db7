package search

import (
	"strings"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// KeywordSearch matches topics by case-insensitive substring over every
// searchable field. All query tokens must match (AND semantics). Results keep
// catalog order.
func KeywordSearch(cat *catalog.Catalog, query string, limit int) []Result {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []Result{}
	}

	fields := FullFields()
	out := []Result{}
	topics := cat.Topics()
	for i := range topics {
		var parts []string
		for _, f := range fields {
			parts = append(parts, f.Values(&topics[i])...)
		}
		blob := Normalize(strings.Join(append(parts, topics[i].ID), "\n"))
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(blob, tok) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		out = append(out, Result{Topic: &topics[i], Score: 0, Why: WhyKeyword})
	}

	return truncate(out, limit)
}

func tokenize(q string) []string {
	q = Normalize(q)
	if q == "" {
		return nil
	}
	return strings.Fields(q)
}
