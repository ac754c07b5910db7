package search

import (
	"math"
	"strings"
	"sync"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

// DefaultThreshold is the largest normalised distance a field match may have.
const DefaultThreshold = 0.35

// MaxQueryRunes caps the normalised query. Bitap cost grows with pattern
// length, so longer input is cut to its first MaxQueryRunes runes.
const MaxQueryRunes = 256

// DefaultDistance is how many runes away from the expected location a match
// may sit before its proximity penalty alone reaches 1.
const DefaultDistance = 100

// Options configures a Matcher.
type Options struct {
	Threshold       float64
	Location        int
	Distance        int
	IgnoreLocation  bool
	IgnoreFieldNorm bool
	// Fields defaults to FullFields when nil.
	Fields []Field
}

// DefaultOptions returns the options of the main search page.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Distance:  DefaultDistance,
		Fields:    FullFields(),
	}
}

type fieldValue struct {
	field string
	raw   string
	text  string
	norm  float64
}

// Matcher ranks catalog topics against free-text queries. Searchable text is
// normalised once at construction; a Matcher is safe for concurrent use.
type Matcher struct {
	cat    *catalog.Catalog
	opts   Options
	weight float64
	docs   [][]fieldValue

	mu       sync.Mutex
	variants map[string]*Matcher // by field set, see withFields
}

// NewMatcher builds a matcher over cat.
func NewMatcher(cat *catalog.Catalog, opts Options) *Matcher {
	if opts.Fields == nil {
		opts.Fields = FullFields()
	}
	m := &Matcher{cat: cat, opts: opts}
	if len(opts.Fields) > 0 {
		m.weight = 1 / float64(len(opts.Fields))
	}

	topics := cat.Topics()
	m.docs = make([][]fieldValue, len(topics))
	for i := range topics {
		var vals []fieldValue
		for _, f := range opts.Fields {
			for _, v := range f.Values(&topics[i]) {
				if strings.TrimSpace(v) == "" {
					continue
				}
				vals = append(vals, fieldValue{
					field: f.Name,
					raw:   v,
					text:  Normalize(v),
					norm:  fieldNorm(v),
				})
			}
		}
		m.docs[i] = vals
	}
	return m
}

// Catalog returns the catalog the matcher searches.
func (m *Matcher) Catalog() *catalog.Catalog { return m.cat }

// Search returns at most limit topics ranked by ascending score. An empty
// query returns the first limit topics in catalog order. A negative limit
// means no cap.
func (m *Matcher) Search(query string, limit int) []Result {
	q := clampQuery(Normalize(query))
	topics := m.cat.Topics()
	if q == "" {
		return preview(topics, limit)
	}

	pat := newBitapPattern(q, bitapOptions{
		threshold:      m.opts.Threshold,
		location:       m.opts.Location,
		distance:       m.opts.Distance,
		ignoreLocation: m.opts.IgnoreLocation,
	})

	results := []Result{}
	for i := range topics {
		score, matches, ok := m.scoreTopic(pat, m.docs[i])
		if !ok {
			continue
		}
		results = append(results, Result{Topic: &topics[i], Score: score, Why: WhyFuzzy, Matches: matches})
	}

	SortResults(results)
	return truncate(results, limit)
}

// Suggest returns the keyword-triggered suggestions for query.
func (m *Matcher) Suggest(query string) []*catalog.Topic {
	return Suggest(m.cat, query)
}

// Lookup answers a query the way the search surface ctx does: ctx.Preview
// topics for an empty query, otherwise up to ctx.Limit topics ranked over
// ctx.Fields (all fields when nil), plus keyword suggestions.
func (m *Matcher) Lookup(query string, ctx Context) Response {
	q := Normalize(query)
	n := ctx.Limit
	if q == "" {
		n = ctx.Preview
	}
	return Response{
		Query:       q,
		Results:     m.withFields(ctx.Fields).Search(q, n),
		Suggestions: m.Suggest(q),
	}
}

// withFields returns a matcher over the same catalog and options searching
// fields instead. Matchers for other field sets are built once and cached.
func (m *Matcher) withFields(fields []Field) *Matcher {
	if fields == nil {
		fields = FullFields()
	}
	key := fieldsKey(fields)
	if key == fieldsKey(m.opts.Fields) {
		return m
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.variants[key]; ok {
		return v
	}
	opts := m.opts
	opts.Fields = fields
	v := NewMatcher(m.cat, opts)
	if m.variants == nil {
		m.variants = make(map[string]*Matcher)
	}
	m.variants[key] = v
	return v
}

func fieldsKey(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return strings.Join(names, ",")
}

// clampQuery cuts q to MaxQueryRunes runes.
func clampQuery(q string) string {
	if len(q) <= MaxQueryRunes {
		return q
	}
	rs := []rune(q)
	if len(rs) <= MaxQueryRunes {
		return q
	}
	return strings.TrimSpace(string(rs[:MaxQueryRunes]))
}

// scoreTopic combines every accepted field match into one score: the product
// of score^(weight*norm), with an exact 0 replaced by machine epsilon so a
// perfect hit still dominates.
func (m *Matcher) scoreTopic(pat *bitapPattern, vals []fieldValue) (float64, []FieldMatch, bool) {
	var matches []FieldMatch
	total := 1.0
	for _, v := range vals {
		s, ok := pat.match(v.text)
		if !ok {
			continue
		}
		matches = append(matches, FieldMatch{Field: v.field, Value: v.raw, Score: s})

		exp := m.weight
		if !m.opts.IgnoreFieldNorm {
			exp *= v.norm
		}
		base := s
		if base == 0 {
			base = epsilon
		}
		total *= math.Pow(base, exp)
	}
	if len(matches) == 0 {
		return 0, nil, false
	}
	return total, matches, true
}

const epsilon = 2.220446049250313e-16

// fieldNorm shortens the influence of long values: 1/sqrt(tokens), rounded
// to three decimals.
func fieldNorm(v string) float64 {
	n := len(strings.Fields(v))
	if n == 0 {
		return 1
	}
	return math.Round(1/math.Sqrt(float64(n))*1000) / 1000
}

func preview(topics []catalog.Topic, limit int) []Result {
	n := len(topics)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Result{Topic: &topics[i], Why: WhyPreview})
	}
	return out
}

func truncate(results []Result, limit int) []Result {
	if limit >= 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
