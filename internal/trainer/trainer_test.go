package trainer

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

func TestDefault_DeckMatchesCatalog(t *testing.T) {
	d := Default()
	assert.Len(t, d.Prompts, 9)
	assert.Len(t, d.Questions, 5)
	assert.Empty(t, d.Validate(catalog.Default()))
}

func TestNextPrompt_ExcludesCurrent(t *testing.T) {
	d := Default()
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		p := d.NextPrompt("prompt-1", rnd)
		assert.NotEqual(t, "prompt-1", p.ID)
	}
}

func TestNextPrompt_SinglePromptFallsBack(t *testing.T) {
	d := &Deck{Prompts: []Prompt{{ID: "only"}}}
	p := d.NextPrompt("only", rand.New(rand.NewSource(1)))
	assert.Equal(t, "only", p.ID)
}

func TestSession_Accuracy(t *testing.T) {
	var s Session
	assert.Equal(t, 0, s.Accuracy())

	p := Prompt{ID: "p", PatternID: "bfs"}
	assert.True(t, s.Check(p, "bfs"))
	assert.False(t, s.Check(p, "dfs"))
	assert.True(t, s.Check(p, "bfs"))

	assert.Equal(t, 3, s.Attempts)
	assert.Equal(t, 2, s.Correct)
	assert.Equal(t, 67, s.Accuracy())
}

func TestQuiz_AnswerScoreReset(t *testing.T) {
	q := NewQuiz(Default().Questions)

	ok, err := q.Answer("quiz-1", "hash-map")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, q.Score())

	ok, err = q.Answer("quiz-1", "sliding-window")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, q.Score())

	sel, ok := q.Selected("quiz-1")
	assert.True(t, ok)
	assert.Equal(t, "sliding-window", sel)

	_, err = q.Answer("quiz-99", "bfs")
	assert.True(t, errors.Is(err, ErrUnknownQuestion))

	q.Reset()
	assert.Equal(t, 0, q.Score())
	_, ok = q.Selected("quiz-1")
	assert.False(t, ok)
}

func TestValidate_ReportsProblems(t *testing.T) {
	d := &Deck{
		Prompts:   []Prompt{{ID: "p1", PatternID: "ghost"}},
		Questions: []Question{{ID: "q1", Options: []string{"bfs", "dfs"}, Answer: "heap"}},
	}
	assert.Len(t, d.Validate(catalog.Default()), 2)
}

func TestResolver(t *testing.T) {
	cat := catalog.Default()
	r := NewResolver(cat, []string{"bfs", "dfs", "sorting-greedy"})

	cases := map[string]string{
		"bfs":     "bfs",
		" DFS ":   "dfs",
		"2":       "dfs",
		"greedy":  "sorting-greedy",
		"breadth": "bfs",
	}
	for in, want := range cases {
		got, ok := r.Resolve(in)
		assert.True(t, ok, "guess %q", in)
		assert.Equal(t, want, got, "guess %q", in)
	}

	for _, in := range []string{"", "7", "0", "xyz"} {
		_, ok := r.Resolve(in)
		assert.False(t, ok, "guess %q", in)
	}
}

func TestResolver_WholeCatalog(t *testing.T) {
	r := NewResolver(catalog.Default(), nil)
	assert.Len(t, r.IDs(), 9)

	got, ok := r.Resolve("binary")
	assert.True(t, ok)
	assert.Equal(t, "binary-search", got)
}
