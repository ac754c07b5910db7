package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/patterns-cli/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the catalog as JSON for other tools",
	Long: `Write the merged catalog (built-in plus user topics) to <dir>:

  export_manifest.json  version, creation time, topic count, catalog hash
  topics.jsonl          one topic per line
  keywords.json         the keyword suggestion table

The export is built next to <dir> and swapped in once complete, so a
reader never sees a half-written directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	dest, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", args[0], err)
	}
	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", parent, err)
	}
	tmpDir, err := os.MkdirTemp(parent, ".patterns-export-*")
	if err != nil {
		return fmt.Errorf("cannot create temp export dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	m, err := export.Write(tmpDir, cat)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := export.AtomicSwap(tmpDir, dest); err != nil {
		return fmt.Errorf("cannot install export: %w", err)
	}

	snap, err := export.Load(dest)
	if err != nil {
		return fmt.Errorf("export written but does not load back: %w", err)
	}
	logger.Debug("export verified", zap.String("dir", dest), zap.String("hash", snap.Manifest.CatalogHash))
	printOK("", fmt.Sprintf("%d topic(s), %d keyword(s) exported: %s", m.TopicCount, len(snap.Keywords), dest))
	printInfo("", fmt.Sprintf("catalog hash %s", m.CatalogHash[:12]))
	return nil
}
