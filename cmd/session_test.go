package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/patterns-cli/internal/catalog"
	"github.com/kamusis/patterns-cli/internal/practice"
	"github.com/kamusis/patterns-cli/internal/trainer"
)

func TestTrainSession(t *testing.T) {
	buf := captureOutput(t)
	deck := &trainer.Deck{Prompts: []trainer.Prompt{{
		ID:        "p1",
		PatternID: "two-pointers",
		Statement: "Sorted array, find a pair summing to target.",
		Signals:   []string{"sorted array", "pair"},
		Answer:    "Move inward from both ends.",
	}}}
	input := "hint\nnonsense-xyz\ntwo-pointers\nsliding-window\n"

	sess := trainSession(strings.NewReader(input), buf, catalog.Default(), deck, 2, rand.New(rand.NewSource(1)))
	if sess.Attempts != 2 || sess.Correct != 1 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Accuracy() != 50 {
		t.Fatalf("accuracy: got %d want 50", sess.Accuracy())
	}
	out := buf.String()
	if !strings.Contains(out, "signals: sorted array, pair") {
		t.Fatalf("hint not shown:\n%s", out)
	}
	if !strings.Contains(out, "is not a pattern I know") {
		t.Fatalf("unknown guess not reported:\n%s", out)
	}
}

func TestTrainSession_QuitEarly(t *testing.T) {
	buf := captureOutput(t)
	sess := trainSession(strings.NewReader("q\n"), buf, catalog.Default(), trainer.Default(), 0, rand.New(rand.NewSource(1)))
	if sess.Attempts != 0 {
		t.Fatalf("expected no attempts, got %d", sess.Attempts)
	}
}

func TestRunQuizSession(t *testing.T) {
	buf := captureOutput(t)
	q := trainer.NewQuiz([]trainer.Question{{
		ID:          "q1",
		Question:    "No repeating characters?",
		Options:     []string{"sliding-window", "hash-map", "binary-search"},
		Answer:      "sliding-window",
		Explanation: "Grow and shrink a window.",
	}})

	answered, err := runQuizSession(strings.NewReader("5\n2\n"), buf, catalog.Default(), q)
	if err != nil {
		t.Fatalf("runQuizSession: %v", err)
	}
	if answered != 1 || q.Score() != 0 {
		t.Fatalf("answered=%d score=%d", answered, q.Score())
	}
	if sel, _ := q.Selected("q1"); sel != "hash-map" {
		t.Fatalf("selected %q", sel)
	}

	answered, err = runQuizSession(strings.NewReader("sliding-window\n"), buf, catalog.Default(), q)
	if err != nil || answered != 1 || q.Score() != 1 {
		t.Fatalf("re-answer: answered=%d score=%d err=%v", answered, q.Score(), err)
	}
}

func TestQuizCommand_AllCorrect(t *testing.T) {
	setupHome(t)
	var answers []string
	for _, q := range trainer.Default().Questions {
		answers = append(answers, q.Answer)
	}
	out, err := executeCommand(t, strings.Join(answers, "\n")+"\n", "quiz")
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	want := fmt.Sprintf("score %d/%d", len(answers), len(answers))
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in:\n%s", want, out)
	}
}

func TestPracticeCommands(t *testing.T) {
	home := setupHome(t)
	histPath := filepath.Join(home, ".patterns", "history.json")

	for i := 0; i < 2; i++ {
		out, err := executeCommand(t, "", "practice", "--seed", fmt.Sprint(i+3))
		if err != nil {
			t.Fatalf("practice: %v\n%s", err, out)
		}
		if i == 1 && !strings.Contains(out, "Review from last time") {
			t.Fatalf("second plan should show a review:\n%s", out)
		}
	}

	b, err := os.ReadFile(histPath)
	if err != nil {
		t.Fatalf("history not written: %v", err)
	}
	var plans []practice.Plan
	if err := json.Unmarshal(b, &plans); err != nil {
		t.Fatalf("history is not JSON: %v", err)
	}
	if len(plans) != 2 || plans[0].CreatedAt.Before(plans[1].CreatedAt) {
		t.Fatalf("history should hold 2 plans newest first: %+v", plans)
	}

	out, err := executeCommand(t, "", "practice", "history")
	if err != nil || !strings.Contains(out, "PATTERN") {
		t.Fatalf("history: %v\n%s", err, out)
	}

	if out, err := executeCommand(t, "", "practice", "clear"); err != nil {
		t.Fatalf("clear: %v\n%s", err, out)
	}
	out, err = executeCommand(t, "", "practice", "history")
	if err != nil || !strings.Contains(out, "no practice history") {
		t.Fatalf("history after clear: %v\n%s", err, out)
	}
}

func TestImportAndExportCommands(t *testing.T) {
	home := setupHome(t)
	src := filepath.Join(t.TempDir(), "notes")
	writeUserTopic(t, src, "trie", "---\nid: trie\ntitle: Trie\nkeywords: [prefix]\n---\nA tree keyed by characters.\n")

	out, err := executeCommand(t, "", "import", src)
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(home, ".patterns", "topics", "trie", "TOPIC.md")); err != nil {
		t.Fatalf("topic not imported: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "export")
	out, err = executeCommand(t, "", "export", dest)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	b, err := os.ReadFile(filepath.Join(dest, "topics.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"id":"trie"`) {
		t.Fatalf("imported topic missing from export")
	}
}

func TestSessions_WriteOnlyToGivenWriter(t *testing.T) {
	global := captureOutput(t)
	var w strings.Builder
	deck := &trainer.Deck{Prompts: []trainer.Prompt{{
		ID:        "p1",
		PatternID: "two-pointers",
		Statement: "Sorted array, find a pair summing to target.",
		Answer:    "Move inward from both ends.",
	}}}
	trainSession(strings.NewReader("nonsense-xyz\ntwo-pointers\n"), &w, catalog.Default(), deck, 1, rand.New(rand.NewSource(1)))

	q := trainer.NewQuiz([]trainer.Question{{
		ID:       "q1",
		Question: "No repeating characters?",
		Options:  []string{"sliding-window", "hash-map"},
		Answer:   "sliding-window",
	}})
	if _, err := runQuizSession(strings.NewReader("9\n2\n"), &w, catalog.Default(), q); err != nil {
		t.Fatalf("runQuizSession: %v", err)
	}

	if global.Len() != 0 {
		t.Fatalf("session leaked to package output:\n%s", global.String())
	}
	out := w.String()
	for _, want := range []string{"=== Pattern trainer ===", "=== Reflex quiz ===", "✓  [two-pointers]", "✗  [hash-map]", "⚠"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in session output:\n%s", want, out)
		}
	}
}
