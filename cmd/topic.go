package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/patterns-cli/internal/catalog"
)

var flagTopicPractice bool

var topicCmd = &cobra.Command{
	Use:   "topic <id-or-title>",
	Short: "Show the study card of a pattern",
	Long: `Display a topic: what it is, when it applies, the solution template,
a worked example and mini examples.

The argument is matched against topic ids first, then as a
case-insensitive substring of ids and titles.

Example:
  patterns topic two-pointers
  patterns topic window --practice`,
	Args: cobra.ExactArgs(1),
	RunE: runTopic,
}

func init() {
	topicCmd.Flags().BoolVar(&flagTopicPractice, "practice", false, "Also list the topic's practice problems")
	rootCmd.AddCommand(topicCmd)
}

func runTopic(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	topics, err := resolveTopics(cat, args[0])
	if err != nil {
		return err
	}
	for i, t := range topics {
		if i > 0 {
			fmt.Fprintln(stdout, strings.Repeat("─", 50))
		}
		printTopic(stdout, t, flagTopicPractice)
	}
	return nil
}

// resolveTopics finds the topics matching arg: an exact id wins, otherwise
// every topic whose id or title contains arg.
func resolveTopics(cat *catalog.Catalog, arg string) ([]*catalog.Topic, error) {
	if t, ok := cat.Lookup(arg); ok {
		return []*catalog.Topic{t}, nil
	}

	lower := strings.ToLower(strings.TrimSpace(arg))
	var matches []*catalog.Topic
	if lower != "" {
		topics := cat.Topics()
		for i := range topics {
			t := &topics[i]
			if strings.Contains(strings.ToLower(t.ID), lower) || strings.Contains(strings.ToLower(t.Title), lower) {
				matches = append(matches, t)
			}
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("topic %q not found.\nTip: run 'patterns search %s' for fuzzy matches.", arg, arg)
	}
	return matches, nil
}

func printTopic(w io.Writer, t *catalog.Topic, practice bool) {
	icon := t.Icon
	if icon == "" {
		icon = "📘"
	}
	fmt.Fprintf(w, "%s %s\n", icon, t.Title)
	if t.Subtitle != "" {
		fmt.Fprintf(w, "%s\n", t.Subtitle)
	}
	fmt.Fprintf(w, "ID: %s\n", t.ID)
	if t.WhatItIs != "" {
		fmt.Fprintf(w, "\nWhat it is:\n  %s\n", t.WhatItIs)
	}
	printList(w, "When to use it", t.WhenUsed)
	printList(w, "Template", t.Template)

	if t.Example.Problem != "" {
		fmt.Fprintf(w, "\nExample: %s\n", t.Example.Problem)
		for i, step := range t.Example.Solution {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
	for _, me := range t.MiniExamples {
		fmt.Fprintf(w, "\nMini example: %s\n", me.Title)
		for _, step := range me.Logic {
			fmt.Fprintf(w, "  → %s\n", step)
		}
	}
	if t.Complexity != nil {
		fmt.Fprintf(w, "\nComplexity: time %s, space %s\n", t.Complexity.Time, t.Complexity.Space)
	}
	if t.Visualization != "" {
		fmt.Fprintf(w, "Picture it: %s\n", t.Visualization)
	}
	if len(t.Keywords) > 0 {
		fmt.Fprintf(w, "\nKeywords: %s\n", strings.Join(t.Keywords, ", "))
	}
	if t.VideoID != "" {
		fmt.Fprintf(w, "Video:    https://www.youtube.com/watch?v=%s\n", t.VideoID)
	}

	if practice {
		for _, lvl := range []struct {
			name     string
			problems []catalog.PracticeProblem
		}{
			{"Easy", t.Practice.Easy},
			{"Medium", t.Practice.Medium},
			{"Hard", t.Practice.Hard},
		} {
			if len(lvl.problems) == 0 {
				continue
			}
			fmt.Fprintf(w, "\nPractice (%s):\n", lvl.name)
			for _, p := range lvl.problems {
				printProblem(w, p)
			}
		}
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func printProblem(w io.Writer, p catalog.PracticeProblem) {
	fmt.Fprintf(w, "  - %s\n", p.Title)
	if p.Prompt != "" {
		fmt.Fprintf(w, "    %s\n", p.Prompt)
	}
	if p.Link != "" {
		fmt.Fprintf(w, "    %s\n", p.Link)
	}
}
