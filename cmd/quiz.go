package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/patterns-cli/internal/catalog"
	"github.com/kamusis/patterns-cli/internal/trainer"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the multiple-choice reflex quiz",
	Long: `Answer each question with an option number, a topic id, or part of a
pattern name. Type 'q' to stop early; the score covers answered questions.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	deck := trainer.Default()
	if len(deck.Questions) == 0 {
		printSkip("", "the quiz has no questions")
		return nil
	}

	q := trainer.NewQuiz(deck.Questions)
	answered, err := runQuizSession(cmd.InOrStdin(), stdout, cat, q)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	printOK("", fmt.Sprintf("score %d/%d (%d answered)", q.Score(), len(q.Questions()), answered))
	return nil
}

// runQuizSession asks every question in order and returns how many were
// answered before the learner quit or input ended.
func runQuizSession(in io.Reader, w io.Writer, cat *catalog.Catalog, q *trainer.Quiz) (int, error) {
	scanner := bufio.NewScanner(in)
	fprintSection(w, "Reflex quiz")

	answered := 0
	for i, qs := range q.Questions() {
		fmt.Fprintf(w, "\nQ%d. %s\n", i+1, qs.Question)
		printCandidates(w, cat, qs.Options)
		res := trainer.NewResolver(cat, qs.Options)

		for {
			fmt.Fprint(w, "> ")
			if !scanner.Scan() {
				return answered, nil
			}
			answer := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(answer) {
			case "q", "quit", "exit":
				return answered, nil
			}
			id, ok := res.Resolve(answer)
			if !ok {
				printLine(w, "⚠", "", fmt.Sprintf("%q is not one of the options", answer))
				continue
			}
			correct, err := q.Answer(qs.ID, id)
			if err != nil {
				return answered, err
			}
			answered++
			if correct {
				printLine(w, "✓", id, qs.Explanation)
			} else {
				printLine(w, "✗", id, fmt.Sprintf("the answer is %s. %s", qs.Answer, qs.Explanation))
			}
			break
		}
	}
	return answered, nil
}
