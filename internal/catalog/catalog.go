// Package catalog holds the static topic catalog and its keyword suggestion table.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/topics.yaml
var defaultData []byte

// ErrEmptyCatalog is returned when a catalog file declares no topics.
var ErrEmptyCatalog = errors.New("catalog has no topics")

// Catalog is an immutable, ordered set of topics plus the keyword index.
// It is safe for concurrent reads.
type Catalog struct {
	topics   []Topic
	byID     map[string]int
	keywords KeywordIndex
}

type catalogFile struct {
	Topics   []Topic      `yaml:"topics"`
	Keywords KeywordIndex `yaml:"keyword_suggestions"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. It is parsed once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// New builds a catalog from topics in the given order. Topic ids must be
// non-empty and unique. Keyword references are not checked here; see Validate.
func New(topics []Topic, keywords KeywordIndex) (*Catalog, error) {
	ts := make([]Topic, len(topics))
	copy(ts, topics)
	byID := make(map[string]int, len(ts))
	for i := range ts {
		id := strings.TrimSpace(ts[i].ID)
		if id == "" {
			return nil, fmt.Errorf("topic %d has an empty id", i)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate topic id %q", id)
		}
		ts[i].ID = id
		byID[id] = i
	}
	kw := make(KeywordIndex, len(keywords))
	copy(kw, keywords)
	return &Catalog{topics: ts, byID: byID, keywords: kw}, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid catalog YAML: %w", err)
	}
	if len(f.Topics) == 0 {
		return nil, ErrEmptyCatalog
	}
	return New(f.Topics, f.Keywords)
}

// LoadFile reads and parses a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Topics returns the topics in catalog order. Callers must not modify them.
func (c *Catalog) Topics() []Topic {
	if c == nil {
		return nil
	}
	return c.topics
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.topics)
}

// Lookup resolves a topic id.
func (c *Catalog) Lookup(id string) (*Topic, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.topics[i], true
}

// Keywords returns the keyword suggestion table.
func (c *Catalog) Keywords() KeywordIndex {
	if c == nil {
		return nil
	}
	return c.keywords
}

// WithTopics returns a new catalog with extra topics appended. An extra topic
// whose id already exists replaces the original in place.
func (c *Catalog) WithTopics(extra []Topic) (*Catalog, error) {
	if len(extra) == 0 {
		return c, nil
	}
	merged := make([]Topic, len(c.Topics()))
	copy(merged, c.Topics())
	pos := make(map[string]int, len(merged))
	for i, t := range merged {
		pos[t.ID] = i
	}
	for _, t := range extra {
		t.ID = strings.TrimSpace(t.ID)
		if i, ok := pos[t.ID]; ok {
			merged[i] = t
			continue
		}
		pos[t.ID] = len(merged)
		merged = append(merged, t)
	}
	return New(merged, c.Keywords())
}

// Validate reports keyword entries that reference unknown topics.
func (c *Catalog) Validate() []error {
	var errs []error
	for _, e := range c.Keywords() {
		if strings.TrimSpace(e.Keyword) == "" {
			errs = append(errs, fmt.Errorf("keyword entry with topics %v has an empty keyword", e.Topics))
		}
		for _, id := range e.Topics {
			if _, ok := c.Lookup(id); !ok {
				errs = append(errs, fmt.Errorf("keyword %q references unknown topic %q", e.Keyword, id))
			}
		}
	}
	return errs
}
