package search

import (
	"strings"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// Suggest scans the catalog's keyword table and, for every keyword contained
// in the normalised query, collects its topic ids in table order without
// duplicates. Ids that do not resolve are dropped. An empty query suggests
// nothing.
func Suggest(cat *catalog.Catalog, query string) []*catalog.Topic {
	out := []*catalog.Topic{}
	q := Normalize(query)
	if q == "" {
		return out
	}

	seen := make(map[string]struct{})
	for _, e := range cat.Keywords() {
		kw := Normalize(e.Keyword)
		if kw == "" || !strings.Contains(q, kw) {
			continue
		}
		for _, id := range e.Topics {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if t, ok := cat.Lookup(id); ok {
				out = append(out, t)
			}
		}
	}
	return out
}
