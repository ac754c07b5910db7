package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the trigger words that produce search suggestions",
	Args:  cobra.NoArgs,
	RunE:  runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	printKeywords(stdout, cat)
	return nil
}

func printKeywords(w io.Writer, cat *catalog.Catalog) {
	kws := cat.Keywords()
	fmt.Fprintf(w, "Keywords (%d):\n", len(kws))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range kws {
		names := make([]string, 0, len(e.Topics))
		for _, id := range e.Topics {
			if t, ok := cat.Lookup(id); ok {
				names = append(names, t.Title)
			} else {
				names = append(names, id+" (missing)")
			}
		}
		fmt.Fprintf(tw, "  %s\t→ %s\n", e.Keyword, strings.Join(names, ", "))
	}
	_ = tw.Flush()
}
