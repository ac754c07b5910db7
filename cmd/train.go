package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/patterns-cli/internal/catalog"
	"github.com/kamusis/patterns-cli/internal/trainer"
)

var (
	flagTrainRounds int
	flagTrainSeed   int64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Practise recognising which pattern a problem needs",
	Long: `Show problem statements one at a time and name the pattern that solves
each. Answer with a topic id, its number in the list, or part of its name.

Type 'hint' for the signals hidden in the statement, 'q' to stop.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagTrainRounds, "rounds", 5, "Number of prompts (0 = until you quit)")
	trainCmd.Flags().Int64Var(&flagTrainSeed, "seed", 0, "Random seed (0 = time based)")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	deck := trainer.Default()
	if errs := deck.Validate(cat); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn("trainer deck problem", zap.Error(e))
		}
	}

	sess := trainSession(cmd.InOrStdin(), stdout, cat, deck, flagTrainRounds, newRand(flagTrainSeed))
	fmt.Fprintln(stdout)
	if sess.Attempts == 0 {
		printSkip("", "no answers given")
		return nil
	}
	printOK("", fmt.Sprintf("accuracy %d%% (%d/%d correct)", sess.Accuracy(), sess.Correct, sess.Attempts))
	return nil
}

// trainSession runs the prompt loop until rounds prompts are answered, the
// learner quits, or input ends.
func trainSession(in io.Reader, w io.Writer, cat *catalog.Catalog, deck *trainer.Deck, rounds int, rnd *rand.Rand) *trainer.Session {
	sess := &trainer.Session{}
	res := trainer.NewResolver(cat, nil)
	scanner := bufio.NewScanner(in)

	fprintSection(w, "Pattern trainer")
	printCandidates(w, cat, res.IDs())

	prev := ""
	for round := 1; rounds <= 0 || round <= rounds; round++ {
		p := deck.NextPrompt(prev, rnd)
		prev = p.ID
		fmt.Fprintf(w, "\n#%d  %s\n", round, p.Statement)

		for {
			fmt.Fprint(w, "> ")
			if !scanner.Scan() {
				return sess
			}
			answer := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(answer) {
			case "q", "quit", "exit":
				return sess
			case "hint", "?":
				fmt.Fprintf(w, "  signals: %s\n", strings.Join(p.Signals, ", "))
				continue
			}
			id, ok := res.Resolve(answer)
			if !ok {
				printLine(w, "⚠", "", fmt.Sprintf("%q is not a pattern I know; try an id or a number", answer))
				continue
			}
			if sess.Check(p, id) {
				printLine(w, "✓", id, p.Answer)
			} else {
				printLine(w, "✗", id, "not quite. "+p.Answer)
			}
			fmt.Fprintf(w, "  accuracy: %d%% over %d attempt(s)\n", sess.Accuracy(), sess.Attempts)
			break
		}
	}
	return sess
}

func printCandidates(w io.Writer, cat *catalog.Catalog, ids []string) {
	for i, id := range ids {
		title := id
		if t, ok := cat.Lookup(id); ok {
			title = t.Title
		}
		fmt.Fprintf(w, "  %d. %-16s %s\n", i+1, id, title)
	}
}
