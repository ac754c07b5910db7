package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/patterns-cli/internal/catalog"
	"github.com/kamusis/patterns-cli/internal/config"
	"github.com/kamusis/patterns-cli/internal/trainer"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config, catalog, trainer deck and history",
	Long: `Check that the catalog and its companions are consistent and that the
configuration can be read. Run this command after editing topics or the
config file, or before filing a bug report.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Automatically fix detected issues",
	Long: `Fix detected issues in ~/.patterns.

Currently fixes:
  - Unresolved import conflicts: deletes all .conflict-* files from the topics dir

Run 'patterns doctor' first to see what will be fixed.`,
	Args: cobra.NoArgs,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("patterns doctor fix")

	fmt.Fprintln(stdout, "\n[ Unresolved conflicts ]")
	conflicts := findConflictFiles(cfg.TopicsDir)
	if len(conflicts) == 0 {
		printOK("", "no conflict files found, nothing to fix")
		return nil
	}

	var failed int
	for _, rel := range conflicts {
		full := filepath.Join(cfg.TopicsDir, rel)
		if err := os.Remove(full); err != nil {
			printErr("", fmt.Sprintf("cannot delete %s: %v", rel, err))
			failed++
		} else {
			printOK("", fmt.Sprintf("deleted %s", rel))
		}
	}

	fmt.Fprintln(stdout)
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	printOK("", fmt.Sprintf("%d conflict file(s) removed", len(conflicts)))
	return nil
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("patterns doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config ───────────────────────────────────────────────────────
	printHeading("patterns.yaml")
	cfgPath, _ := config.ConfigPath()
	cfg, loadErr := config.Load()
	switch {
	case loadErr != nil:
		failD("cannot load config: %v", loadErr)
	default:
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			printSkip("", fmt.Sprintf("%s not found, using defaults (run 'patterns init')", cfgPath))
		} else {
			printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
		}
		if th := cfg.Search.Threshold; th <= 0 || th > 1 {
			printWarn("", fmt.Sprintf("search.threshold %v is outside (0,1]; the default 0.35 is used", th))
		}
		for name := range cfg.Search.Contexts {
			if _, err := searchContext(cfg, name); err != nil {
				printWarn("", fmt.Sprintf("search.contexts: %v", err))
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 2: catalog ──────────────────────────────────────────────────────
	printHeading("Catalog")
	var cat *catalog.Catalog
	if loadErr == nil {
		var err error
		cat, err = loadCatalog(cfg)
		if err != nil {
			failD("cannot load catalog: %v", err)
		} else {
			printOK("", fmt.Sprintf("%d topic(s), %d keyword(s)", cat.Len(), len(cat.Keywords())))
			for _, e := range cat.Validate() {
				failD("%v", e)
			}
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Check 3: trainer deck ─────────────────────────────────────────────────
	printHeading("Trainer deck")
	if cat != nil {
		deck := trainer.Default()
		errs := deck.Validate(cat)
		for _, e := range errs {
			failD("%v", e)
		}
		if len(errs) == 0 {
			printOK("", fmt.Sprintf("%d prompt(s), %d quiz question(s) reference known topics", len(deck.Prompts), len(deck.Questions)))
		}
	} else {
		printWarn("", "skipped (catalog not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Check 4: user topics ──────────────────────────────────────────────────
	printHeading("Topics directory")
	if loadErr == nil {
		if _, err := os.Stat(cfg.TopicsDir); os.IsNotExist(err) {
			printMiss("", fmt.Sprintf("%s does not exist (no user topics)", cfg.TopicsDir))
		} else {
			topics, err := catalog.DiscoverTopics(cfg.TopicsDir)
			if err != nil {
				failD("cannot scan %s: %v", cfg.TopicsDir, err)
			} else {
				printOK("", fmt.Sprintf("%d user topic(s) in %s", len(topics), cfg.TopicsDir))
			}
			conflicts := findConflictFiles(cfg.TopicsDir)
			for _, c := range conflicts {
				printWarn("", c)
			}
			if len(conflicts) > 0 {
				fmt.Fprintf(stdout, "\n  ⚠  %d unresolved conflict file(s) found.\n", len(conflicts))
				fmt.Fprintln(stdout, "     Review and delete the .conflict-* files you no longer need,")
				fmt.Fprintln(stdout, "     or run 'patterns doctor fix' to delete them all.")
				allOK = false
			}
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Check 5: history ──────────────────────────────────────────────────────
	printHeading("Practice history")
	if loadErr == nil {
		plans := historyFor(cfg).Load()
		if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
			printMiss("", fmt.Sprintf("%s not created yet", cfg.History.Path))
		} else {
			printOK("", fmt.Sprintf("%d of %d plan(s) kept: %s", len(plans), cfg.History.Max, cfg.History.Path))
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Fprintln(stdout)

	// ── Summary ───────────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, "✓  All checks passed. Patterns is ready to use.")
		return nil
	}
	fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}

// findConflictFiles walks dir and returns relative paths of all files whose
// name contains ".conflict-"; these are left behind by 'patterns import'.
func findConflictFiles(dir string) []string {
	var found []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.Contains(d.Name(), ".conflict-") {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				rel = path
			}
			found = append(found, rel)
		}
		return nil
	})
	return found
}
