package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagDebug bool

	// logger carries diagnostics only; user-facing output goes through the
	// print helpers in output.go.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "patterns",
	Short:        "Patterns CLI — find, study and drill algorithmic patterns",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Patterns is a study companion for algorithmic problem solving.

It ships a catalog of patterns (two pointers, sliding window, ...) with
fuzzy search, a pattern-recognition trainer, reflex quizzes and daily
practice plans. User topics live in ~/.patterns/topics/.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		stdout = cmd.OutOrStdout()
		stderr = cmd.ErrOrStderr()
		l, err := newLogger(flagDebug, stderr)
		if err != nil {
			return fmt.Errorf("cannot initialise logger: %w", err)
		}
		logger = l
		logger.Debug("command started", zap.String("command", cmd.CommandPath()))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Print diagnostic logs to stderr")
}

// newLogger builds a production logger writing to w, at debug level when
// debug is set.
func newLogger(debug bool, w io.Writer) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if w == os.Stderr {
		return cfg.Build()
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(w), cfg.Level)
	return zap.New(core), nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
