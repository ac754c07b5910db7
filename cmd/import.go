package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/patterns-cli/internal/catalog"
	"github.com/kamusis/patterns-cli/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Copy topic folders into ~/.patterns/topics",
	Long: `Import every sub-folder of <dir> that contains a TOPIC.md.

Identical files are skipped. When a file already exists with different
content, the incoming version is stored next to it as
<name>.conflict-import.<ext> so nothing is lost; review those files and run
'patterns doctor fix' once resolved.

Example:
  patterns import ~/notes/patterns`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := importer.ImportDir(args[0], cfg.TopicsDir, cfg.Excludes)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	logger.Debug("import finished",
		zap.String("src", args[0]),
		zap.String("dst", cfg.TopicsDir),
		zap.Int("files", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("conflicts", len(result.Conflicts)))

	printImportResult(stdout, cfg.TopicsDir, result)

	// Surface front matter that no longer loads alongside the catalog.
	if _, err := loadCatalog(cfg); err != nil {
		printWarn("", fmt.Sprintf("imported topics do not load: %v", err))
	} else if topics, err := catalog.DiscoverTopics(cfg.TopicsDir); err == nil {
		printOK("", fmt.Sprintf("%d user topic(s) now in %s", len(topics), cfg.TopicsDir))
	}
	return nil
}

func printImportResult(w io.Writer, dst string, r *importer.Result) {
	fmt.Fprintln(w, "\n=== Import Topics ===")
	fmt.Fprintln(w, "\n● Imported:")
	fmt.Fprintf(w, "  ✓  %d topic(s) imported, %d skipped, %d conflict(s)  (%d file(s))\n",
		r.TopicsImported, r.TopicsSkipped, r.TopicsConflicts, r.Imported+r.Skipped)

	if len(r.NotTopics) > 0 {
		fmt.Fprintln(w, "\n● Not topic folders (no TOPIC.md, skipped):")
		for _, name := range r.NotTopics {
			fmt.Fprintf(w, "  ○  %s\n", name)
		}
	}

	if len(r.Conflicts) > 0 {
		fmt.Fprintf(w, "\n⚠  %d conflict(s) detected during import.\n", len(r.Conflicts))
		fmt.Fprintf(w, "   All versions have been preserved in %s.\n", dst)
		fmt.Fprintln(w, "   Please review and resolve the following files manually:")
		for _, c := range r.Conflicts {
			fmt.Fprintf(w, "     - %s  ← conflicts with %s\n", c.Conflict, c.Original)
		}
	}
	fmt.Fprintln(w)
}
