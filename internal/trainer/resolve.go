package trainer

import (
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// Resolver maps what a learner typed to a topic id.
type Resolver struct {
	ids    []string
	labels []string
}

// NewResolver resolves against the given topic ids, or against the whole
// catalog when ids is empty.
func NewResolver(cat *catalog.Catalog, ids []string) *Resolver {
	r := &Resolver{}
	if len(ids) == 0 {
		for _, t := range cat.Topics() {
			ids = append(ids, t.ID)
		}
	}
	for _, id := range ids {
		label := id
		if t, ok := cat.Lookup(id); ok {
			label = id + " " + t.Title
		}
		r.ids = append(r.ids, id)
		r.labels = append(r.labels, strings.ToLower(label))
	}
	return r
}

// String implements fuzzy.Source.
func (r *Resolver) String(i int) string { return r.labels[i] }

// Len implements fuzzy.Source.
func (r *Resolver) Len() int { return len(r.labels) }

// IDs returns the candidate ids in order.
func (r *Resolver) IDs() []string { return r.ids }

// Resolve accepts an exact id, a 1-based option number, or a fuzzy
// abbreviation of an id or title. Ambiguous fuzzy guesses do not resolve.
func (r *Resolver) Resolve(guess string) (string, bool) {
	g := strings.ToLower(strings.TrimSpace(guess))
	if g == "" {
		return "", false
	}
	for _, id := range r.ids {
		if id == g {
			return id, true
		}
	}
	if n, err := strconv.Atoi(g); err == nil {
		if n >= 1 && n <= len(r.ids) {
			return r.ids[n-1], true
		}
		return "", false
	}

	matches := fuzzy.FindFrom(g, r)
	if len(matches) == 0 {
		return "", false
	}
	if len(matches) > 1 && matches[0].Score == matches[1].Score {
		return "", false
	}
	return r.ids[matches[0].Index], true
}
