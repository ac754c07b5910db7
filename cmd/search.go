package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/patterns-cli/internal/config"
	"github.com/kamusis/patterns-cli/internal/search"
)

var (
	flagSearchContext   string
	flagSearchLimit     int
	flagSearchThreshold float64
	flagSearchKeyword   bool
	flagSearchExplain   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy-search the pattern catalog",
	Long: `Rank catalog topics against a free-text query. Typos are tolerated.

Without a query the first topics of the catalog are shown. Keyword
suggestions are listed when the query contains a trigger word such as
"substring" or "intervals".

Contexts mirror the places a search box appears:
  full     6 topics on empty query, up to 8 results, all fields
  compact  4 topics on empty query, up to 5 results, all fields
  header   nothing on empty query, up to 5 results, title/subtitle/keywords

Example:
  patterns search sliding window
  patterns search --context header "meeting rooms"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchContext, "context", "full", "Search context: "+strings.Join(search.ContextNames(), ", "))
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0, "Maximum results, also caps the empty-query preview (default: the context's limits; negative for no cap)")
	searchCmd.Flags().Float64Var(&flagSearchThreshold, "threshold", 0, "Fuzzy match threshold in [0,1] (default from config)")
	searchCmd.Flags().BoolVar(&flagSearchKeyword, "keyword", false, "Plain substring search instead of fuzzy ranking")
	searchCmd.Flags().BoolVar(&flagSearchExplain, "explain", false, "Show the fields that matched and their scores")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	sc, err := searchContext(cfg, flagSearchContext)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("limit") {
		sc = withLimit(sc, flagSearchLimit)
	}
	opts := matcherOptions(cfg, sc)
	if cmd.Flags().Changed("threshold") {
		if flagSearchThreshold < 0 || flagSearchThreshold > 1 {
			return fmt.Errorf("threshold must be within [0,1], got %v", flagSearchThreshold)
		}
		opts.Threshold = flagSearchThreshold
	}

	query := strings.Join(args, " ")
	var resp search.Response
	if flagSearchKeyword {
		resp = search.Response{
			Query:       search.Normalize(query),
			Results:     search.KeywordSearch(cat, query, sc.Limit),
			Suggestions: search.Suggest(cat, query),
		}
	} else {
		resp = search.NewMatcher(cat, opts).Lookup(query, sc)
	}
	logger.Debug("search finished",
		zap.String("query", resp.Query),
		zap.String("context", sc.Name),
		zap.Float64("threshold", opts.Threshold),
		zap.Int("results", len(resp.Results)),
		zap.Int("suggestions", len(resp.Suggestions)))

	printSearchResponse(stdout, resp, flagSearchExplain)
	return nil
}

// searchContext resolves a built-in context and applies the config's limits.
func searchContext(cfg *config.Config, name string) (search.Context, error) {
	sc, err := search.ContextByName(name)
	if err != nil {
		return search.Context{}, err
	}
	sc.Preview, sc.Limit = cfg.Limits(sc.Name, sc.Preview, sc.Limit)
	return sc, nil
}

// withLimit caps both the ranked results and the empty-query preview at n.
func withLimit(sc search.Context, n int) search.Context {
	sc.Limit, sc.Preview = n, n
	return sc
}

func matcherOptions(cfg *config.Config, sc search.Context) search.Options {
	opts := search.DefaultOptions()
	if th := cfg.Search.Threshold; th > 0 && th <= 1 {
		opts.Threshold = th
	}
	if cfg.Search.Distance > 0 {
		opts.Distance = cfg.Search.Distance
	}
	opts.IgnoreLocation = cfg.Search.IgnoreLocation
	if sc.Fields != nil {
		opts.Fields = sc.Fields
	}
	return opts
}

func printSearchResponse(w io.Writer, resp search.Response, explain bool) {
	if resp.Query == "" {
		fmt.Fprintf(w, "\npatterns search\n\n")
	} else {
		fmt.Fprintf(w, "\npatterns search %q\n\n", resp.Query)
	}
	fmt.Fprintf(w, "Results (%d found):\n", len(resp.Results))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range resp.Results {
		score := ""
		if r.Why == search.WhyFuzzy {
			score = fmt.Sprintf("[%.3f]", r.Score)
		}
		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\n", i+1, score, r.Topic.ID, r.Topic.Title)
		if explain {
			for _, m := range r.Matches {
				fmt.Fprintf(tw, "\t\t  %s\t%s [%.3f]\n", m.Field, clip(m.Value, 60), m.Score)
			}
		}
	}
	_ = tw.Flush()

	if len(resp.Suggestions) > 0 {
		fmt.Fprintf(w, "\nSuggested by keyword:\n")
		for _, t := range resp.Suggestions {
			fmt.Fprintf(w, "  ~  [%s] %s\n", t.ID, t.Title)
		}
	}
	if resp.Query != "" && len(resp.Results) == 0 && len(resp.Suggestions) == 0 {
		fmt.Fprintf(w, "\nNo topics match %q. Try fewer words or 'patterns keywords'.\n", resp.Query)
	}
}

// clip shortens s to n runes with a trailing ellipsis.
func clip(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
