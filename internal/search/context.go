package search

import (
	"fmt"
	"sort"
)

// Context bundles the limits and field set of one search surface. Preview is
// how many topics an empty query shows; Limit caps ranked results. A nil
// Fields searches every field.
type Context struct {
	Name    string
	Preview int
	Limit   int
	Fields  []Field
}

var (
	ContextFull    = Context{Name: "full", Preview: 6, Limit: 8}
	ContextCompact = Context{Name: "compact", Preview: 4, Limit: 5}
	ContextHeader  = Context{Name: "header", Preview: 0, Limit: 5, Fields: HeaderFields()}
)

var contexts = map[string]Context{
	ContextFull.Name:    ContextFull,
	ContextCompact.Name: ContextCompact,
	ContextHeader.Name:  ContextHeader,
}

// ContextByName returns one of the built-in contexts.
func ContextByName(name string) (Context, error) {
	c, ok := contexts[name]
	if !ok {
		return Context{}, fmt.Errorf("unknown search context %q (want one of %v)", name, ContextNames())
	}
	return c, nil
}

// ContextNames lists the built-in context names, sorted.
func ContextNames() []string {
	out := make([]string, 0, len(contexts))
	for n := range contexts {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
