package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 9 {
		t.Fatalf("expected 9 topics, got %d", c.Len())
	}
	if c.Topics()[0].ID != "two-pointers" {
		t.Fatalf("unexpected first topic: %q", c.Topics()[0].ID)
	}
	if errs := c.Validate(); len(errs) != 0 {
		t.Fatalf("embedded catalog has dangling keyword references: %v", errs)
	}
	if Default() != c {
		t.Fatalf("Default should return the same catalog on every call")
	}
}

func TestDefault_TopicsCarryPracticeProblems(t *testing.T) {
	for _, tp := range Default().Topics() {
		if len(tp.Practice.Easy) == 0 || len(tp.Practice.Medium) == 0 {
			t.Errorf("topic %s is missing easy or medium practice problems", tp.ID)
		}
		if len(tp.Keywords) == 0 {
			t.Errorf("topic %s has no keywords", tp.ID)
		}
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Topic{{ID: "a"}, {ID: "a"}}, nil)
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestNew_TrimsIDs(t *testing.T) {
	c, err := New([]Topic{{ID: "  heap \n", Title: "Heap"}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Topics()[0].ID; got != "heap" {
		t.Fatalf("stored id not trimmed: %q", got)
	}

	merged, err := c.WithTopics([]Topic{{ID: " heap", Title: "Heap v2"}})
	if err != nil {
		t.Fatalf("WithTopics: %v", err)
	}
	if merged.Len() != 1 || merged.Topics()[0].Title != "Heap v2" {
		t.Fatalf("padded id should replace the existing topic, got %+v", merged.Topics())
	}

	if _, err := New([]Topic{{ID: "a"}, {ID: " a "}}, nil); err == nil {
		t.Fatalf("ids differing only by whitespace should collide")
	}
}

func TestNew_RejectsEmptyID(t *testing.T) {
	_, err := New([]Topic{{ID: " "}}, nil)
	if err == nil {
		t.Fatalf("expected empty id error")
	}
}

func TestParse_EmptyCatalog(t *testing.T) {
	_, err := Parse([]byte("topics: []\n"))
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	c, err := New([]Topic{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tp, ok := c.Lookup("b")
	if !ok || tp.Title != "B" {
		t.Fatalf("Lookup(b) = %v, %v", tp, ok)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Fatalf("Lookup(missing) should fail")
	}

	var nilCat *Catalog
	if _, ok := nilCat.Lookup("a"); ok {
		t.Fatalf("nil catalog should resolve nothing")
	}
}

func TestValidate_ReportsDanglingReferences(t *testing.T) {
	c, err := New(
		[]Topic{{ID: "a"}},
		KeywordIndex{{Keyword: "k", Topics: []string{"a", "ghost"}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	errs := c.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected 1 validation error, got %v", errs)
	}
}

func TestWithTopics_ReplacesAndAppends(t *testing.T) {
	c, err := New([]Topic{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	merged, err := c.WithTopics([]Topic{{ID: "b", Title: "B2"}, {ID: "c", Title: "C"}})
	if err != nil {
		t.Fatal(err)
	}
	if merged.Len() != 3 {
		t.Fatalf("expected 3 topics, got %d", merged.Len())
	}
	if merged.Topics()[1].Title != "B2" {
		t.Fatalf("expected b to be replaced in place, got %q", merged.Topics()[1].Title)
	}
	if c.Topics()[1].Title != "B" {
		t.Fatalf("original catalog was modified")
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "topics.yaml")
	doc := "topics:\n  - id: a\n    title: A\nkeyword_suggestions:\n  - keyword: x\n    topics: [a]\n"
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Len() != 1 || len(c.Keywords()) != 1 {
		t.Fatalf("unexpected catalog: %d topics, %d keywords", c.Len(), len(c.Keywords()))
	}
}
