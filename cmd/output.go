package cmd

import (
	"fmt"
	"io"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions so icons and indentation stay consistent.
// stdout and stderr are rebound to the running command's writers before each
// command executes.
//
// Icon semantics:
//   ✓  success / correct
//   ✗  error / wrong answer     (written to stderr for errors)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / suggestion

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// printSection prints a top-level section header, e.g. "=== Doctor ===".
func printSection(title string) { fprintSection(stdout, title) }

func fprintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

// printBullet prints a grouped-section bullet, e.g. "● Imported:".
func printBullet(title string) {
	fmt.Fprintf(stdout, "\n● %s\n", title)
}

// printHeading prints a "[ name ]" check heading.
func printHeading(title string) {
	fmt.Fprintf(stdout, "[ %s ]\n", title)
}

func printLine(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) { printLine(stdout, "✓", name, msg) }

// printErr prints an error line to stderr.
func printErr(name, msg string) { printLine(stderr, "✗", name, msg) }

func printWarn(name, msg string) { printLine(stdout, "⚠", name, msg) }

func printSkip(name, msg string) { printLine(stdout, "○", name, msg) }

func printMiss(name, msg string) { printLine(stdout, "-", name, msg) }

// printInfo prints a neutral informational line.
func printInfo(name, msg string) { printLine(stdout, "~", name, msg) }
