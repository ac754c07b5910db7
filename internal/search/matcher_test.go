package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

func ids(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Topic.ID)
	}
	return out
}

func topicIDs(topics []*catalog.Topic) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.ID)
	}
	return out
}

func smallCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Topic{
		{ID: "a", Title: "Two Pointers"},
		{ID: "b", Title: "Sliding Window"},
	}, nil)
	require.NoError(t, err)
	return c
}

func TestSearch_EmptyQueryReturnsCatalogPrefix(t *testing.T) {
	m := NewMatcher(smallCatalog(t), DefaultOptions())

	res := m.Search("", 1)
	assert.Equal(t, []string{"a"}, ids(res))
	assert.Equal(t, WhyPreview, res[0].Why)

	assert.Equal(t, []string{"a", "b"}, ids(m.Search("   \t", 5)))
	assert.Empty(t, m.Search("", 0))
}

func TestSearch_ExactTitleRanksFirst(t *testing.T) {
	m := NewMatcher(smallCatalog(t), DefaultOptions())

	res := m.Search("Two Pointers", 8)
	require.NotEmpty(t, res)
	assert.Equal(t, "a", res[0].Topic.ID)
	require.NotEmpty(t, res[0].Matches)
	assert.Equal(t, "title", res[0].Matches[0].Field)
	assert.Equal(t, 0.0, res[0].Matches[0].Score)
	// the topic score is a product of powers, so an exact hit stays positive
	assert.Greater(t, res[0].Score, 0.0)
}

func TestSearch_ExactTitleAcrossDefaultCatalog(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	for _, tp := range catalog.Default().Topics() {
		res := m.Search(tp.Title, 8)
		require.NotEmpty(t, res, "query %q", tp.Title)
		assert.Equal(t, tp.ID, res[0].Topic.ID, "query %q", tp.Title)
	}
}

func TestSearch_ResultLengthNeverExceedsLimit(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	queries := []string{"", "a", "s", "search", "substring", "sorted pair", "window", "dp"}
	for _, q := range queries {
		for _, n := range []int{0, 1, 4, 5, 6, 8} {
			assert.LessOrEqual(t, len(m.Search(q, n)), n, "query %q limit %d", q, n)
		}
	}
}

func TestSearch_ToleratesTypos(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	res := m.Search("slidng windw", 8)
	require.NotEmpty(t, res)
	assert.Equal(t, "sliding-window", res[0].Topic.ID)
	assert.Equal(t, WhyFuzzy, res[0].Why)
}

func TestSearch_LongQueryIsChunked(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	res := m.Search("longest substring without repeating characters and more text beyond", 8)
	assert.Contains(t, ids(res), "sliding-window")
}

func TestSearch_NoMatch(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	resp := m.Lookup("zzzzqqqq", ContextFull)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.Suggestions)
}

func TestSearch_EqualScoresKeepCatalogOrder(t *testing.T) {
	c, err := catalog.New([]catalog.Topic{
		{ID: "first", Title: "Heap Basics"},
		{ID: "second", Title: "Heap Basics"},
		{ID: "third", Title: "Heap Basics"},
	}, nil)
	require.NoError(t, err)

	res := NewMatcher(c, DefaultOptions()).Search("heap", 3)
	require.Len(t, res, 3)
	assert.Equal(t, []string{"first", "second", "third"}, ids(res))
	assert.Equal(t, res[0].Score, res[2].Score)
}

func TestSearch_EmptyCatalog(t *testing.T) {
	c, err := catalog.New(nil, nil)
	require.NoError(t, err)
	m := NewMatcher(c, DefaultOptions())
	assert.Empty(t, m.Search("", 5))
	assert.Empty(t, m.Search("two", 5))
	assert.Empty(t, m.Suggest("substring"))
}

func TestSearch_RecordsFieldMatches(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	res := m.Search("meeting rooms", 1)
	require.Len(t, res, 1)
	assert.Equal(t, "sorting-greedy", res[0].Topic.ID)

	fields := map[string]bool{}
	for _, fm := range res[0].Matches {
		fields[fm.Field] = true
	}
	assert.True(t, fields["keywords"] || fields["mini_examples.title"], "matches: %+v", res[0].Matches)
}

func TestSearch_HeaderFieldsIgnoreDescriptions(t *testing.T) {
	c, err := catalog.New([]catalog.Topic{
		{ID: "a", Title: "Alpha", WhatItIs: "mentions gizmo"},
	}, nil)
	require.NoError(t, err)

	full := NewMatcher(c, DefaultOptions())
	assert.Len(t, full.Search("gizmo", 5), 1)

	opts := DefaultOptions()
	opts.Fields = HeaderFields()
	header := NewMatcher(c, opts)
	assert.Empty(t, header.Search("gizmo", 5))
}

func TestLookup_UsesContextFields(t *testing.T) {
	c, err := catalog.New([]catalog.Topic{
		{ID: "a", Title: "Alpha", WhatItIs: "mentions gizmo"},
	}, nil)
	require.NoError(t, err)

	m := NewMatcher(c, DefaultOptions())
	assert.Empty(t, m.Lookup("gizmo", ContextHeader).Results)
	assert.Equal(t, []string{"a"}, ids(m.Lookup("gizmo", ContextFull).Results))
	assert.Equal(t, []string{"a"}, ids(m.Lookup("alpha", ContextHeader).Results))

	opts := DefaultOptions()
	opts.Fields = HeaderFields()
	header := NewMatcher(c, opts)
	assert.Equal(t, []string{"a"}, ids(header.Lookup("gizmo", ContextCompact).Results))
}

func TestSearch_LongQueryIsClamped(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())
	prefix := strings.Repeat("sliding window ", 20)
	long := prefix + strings.Repeat("x", 10000)

	clamped := clampQuery(Normalize(long))
	assert.Len(t, []rune(clamped), MaxQueryRunes)
	assert.Equal(t, ids(m.Search(clamped, 8)), ids(m.Search(long, 8)))
}

func TestSearch_PartialChunkMatchKeepsTopicAboveThreshold(t *testing.T) {
	title := "monotonic stack keeps candidates" // 32 runes, no 'q'
	c, err := catalog.New([]catalog.Topic{{ID: "stack", Title: title}}, nil)
	require.NoError(t, err)

	// first chunk matches exactly, second chunk matches nothing; the field
	// score is their mean and the topic is still returned
	res := NewMatcher(c, DefaultOptions()).Search(title+strings.Repeat("q", 32), 5)
	require.Len(t, res, 1)
	require.Len(t, res[0].Matches, 1)
	assert.InDelta(t, 0.5005, res[0].Matches[0].Score, 1e-9)
	assert.Greater(t, res[0].Matches[0].Score, DefaultThreshold)
}

func TestLookup_Contexts(t *testing.T) {
	m := NewMatcher(catalog.Default(), DefaultOptions())

	full := m.Lookup("", ContextFull)
	assert.Len(t, full.Results, 6)
	assert.Empty(t, full.Suggestions)

	compact := m.Lookup("  ", ContextCompact)
	assert.Len(t, compact.Results, 4)

	header := m.Lookup("", ContextHeader)
	assert.Empty(t, header.Results)

	hit := m.Lookup("Substring", ContextCompact)
	assert.Equal(t, "substring", hit.Query)
	assert.LessOrEqual(t, len(hit.Results), 5)
	assert.NotEmpty(t, hit.Suggestions)
}

func TestContextByName(t *testing.T) {
	c, err := ContextByName("compact")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Preview)
	assert.Equal(t, 5, c.Limit)

	_, err = ContextByName("sidebar")
	assert.Error(t, err)
	assert.Equal(t, []string{"compact", "full", "header"}, ContextNames())
}
