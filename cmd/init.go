package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/patterns-cli/internal/config"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.patterns with a default config",
	Long: `Initialize ~/.patterns/:

  patterns.yaml  search tuning, topics dir, history location
  .env           override template (PATTERNS_SEARCH_THRESHOLD, ...)
  topics/        your own TOPIC.md folders, merged into the catalog

Existing files are left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing patterns.yaml with defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. ~/.patterns ────────────────────────────────────────────────────────
	dir, err := config.PatternsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("Patterns directory ready: %s", dir))

	// ── 2. patterns.yaml ──────────────────────────────────────────────────────
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) || flagInitForce {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. .env template ──────────────────────────────────────────────────────
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(envPath); err == nil {
		printSkip("", fmt.Sprintf(".env already exists: %s", envPath))
	} else {
		if err := config.EnsureDotEnvTemplate(); err != nil {
			return err
		}
		printOK("", fmt.Sprintf(".env template written: %s", envPath))
	}

	// ── 4. topics dir ─────────────────────────────────────────────────────────
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.TopicsDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", cfg.TopicsDir, err)
	}
	printOK("", fmt.Sprintf("Topics directory ready: %s", cfg.TopicsDir))

	fmt.Fprintln(stdout, "\nNext: 'patterns search <query>', 'patterns train' or 'patterns practice'.")
	return nil
}
