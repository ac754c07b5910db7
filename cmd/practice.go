package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/patterns-cli/internal/config"
	"github.com/kamusis/patterns-cli/internal/practice"
)

var (
	flagPracticeNoSave bool
	flagPracticeSeed   int64
	flagHistoryLimit   int
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Generate today's practice plan",
	Long: `Pick a pattern to review plus one easy and one medium problem from the
catalog. The plan is saved to the practice history (newest first) unless
--no-save is given; the previous plan is shown for review.`,
	Args: cobra.NoArgs,
	RunE: runPractice,
}

var practiceHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved practice plans, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPracticeHistory,
}

var practiceClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the practice history",
	Args:  cobra.NoArgs,
	RunE:  runPracticeClear,
}

func init() {
	practiceCmd.Flags().BoolVar(&flagPracticeNoSave, "no-save", false, "Do not record the plan in the history")
	practiceCmd.Flags().Int64Var(&flagPracticeSeed, "seed", 0, "Random seed (0 = time based)")
	practiceHistoryCmd.Flags().IntVar(&flagHistoryLimit, "limit", 0, "Show at most this many plans (0 = all)")
	practiceCmd.AddCommand(practiceHistoryCmd, practiceClearCmd)
	rootCmd.AddCommand(practiceCmd)
}

func historyFor(cfg *config.Config) *practice.History {
	return practice.NewHistory(cfg.History.Path, cfg.History.Max)
}

func runPractice(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	gen, err := practice.NewGenerator(cat, newRand(flagPracticeSeed))
	if err != nil {
		return fmt.Errorf("cannot build practice plan: %w", err)
	}

	hist := historyFor(cfg)
	prev, hasPrev := hist.Latest()
	plan := gen.Next()

	printSection("Daily practice")
	printPlan(stdout, plan)

	if hasPrev {
		printBullet("Review from last time:")
		printInfo(prev.Pattern.ID, prev.Pattern.Title)
		printInfo(prev.Easy.PatternID, prev.Easy.Title)
		printInfo(prev.Medium.PatternID, prev.Medium.Title)
	}

	fmt.Fprintln(stdout)
	if flagPracticeNoSave {
		printSkip("", "plan not saved (--no-save)")
		return nil
	}
	plans, err := hist.Save(plan)
	if err != nil {
		return err
	}
	logger.Debug("practice plan saved", zap.String("id", plan.ID), zap.String("path", hist.Path()), zap.Int("history", len(plans)))
	printOK("", fmt.Sprintf("plan %s saved (%d in history)", plan.ID, len(plans)))
	return nil
}

func printPlan(w io.Writer, p practice.Plan) {
	fmt.Fprintf(w, "\nPattern to review: %s\n", p.Pattern.Title)
	if p.Pattern.WhatItIs != "" {
		fmt.Fprintf(w, "  %s\n", p.Pattern.WhatItIs)
	}
	for _, s := range p.Pattern.WhenUsed {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	for _, e := range []struct {
		level string
		entry practice.Entry
	}{
		{"Easy", p.Easy},
		{"Medium", p.Medium},
	} {
		fmt.Fprintf(w, "\n%s (%s):\n", e.level, e.entry.PatternTitle)
		printProblem(w, e.entry.PracticeProblem)
	}
}

func runPracticeHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	plans := historyFor(cfg).Load()
	if len(plans) == 0 {
		printMiss("", fmt.Sprintf("no practice history at %s", cfg.History.Path))
		return nil
	}
	if flagHistoryLimit > 0 && len(plans) > flagHistoryLimit {
		plans = plans[:flagHistoryLimit]
	}
	printHistory(stdout, plans)
	return nil
}

func printHistory(w io.Writer, plans []practice.Plan) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  DATE\tPATTERN\tEASY\tMEDIUM")
	for _, p := range plans {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			p.Pattern.Title, p.Easy.Title, p.Medium.Title)
	}
	_ = tw.Flush()
}

func runPracticeClear(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	hist := historyFor(cfg)
	if err := hist.Clear(); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("practice history cleared: %s", hist.Path()))
	return nil
}
