package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/catalog"
	"github.com/pders01/castdex/internal/render"
)

var (
	listQuery string
	listTopic string
	listSort  string
	listLimit int
	listWidth int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the episodes matching a query, topic and sort order",
	Long: `Print the filtered episode list without starting the browser.

Examples:
  castdex list --query rust
  castdex list --topic machine-learning --sort views-desc
  castdex list --sort date-asc --limit 10`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Case-insensitive text to match")
	listCmd.Flags().StringVarP(&listTopic, "topic", "t", "", "Topic name to filter by")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "Sort order: date-desc, date-asc, guest-asc, views-desc, duration-desc, duration-asc")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Print at most this many episodes (0 = all)")
	listCmd.Flags().IntVar(&listWidth, "width", 80, "Wrap width")
}

func runList(cmd *cobra.Command, _ []string) error {
	filter := catalog.FilterState{Query: listQuery, Topic: listTopic, Sort: catalog.DefaultSort}
	if listSort != "" {
		k, err := catalog.ParseSortKey(listSort)
		if err != nil {
			return err
		}
		filter.Sort = k
	}

	cfg, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	cat, err := src.LoadCatalog(commandContext(cmd))
	if err != nil {
		return err
	}

	state := catalog.NewState(cat.Episodes, cat.Topics)
	// Without any flag the list keeps feed order, like a fresh browser.
	if listQuery != "" || listTopic != "" || listSort != "" {
		state.Apply(filter)
	}

	view := state.View()
	if listLimit > 0 && len(view) > listLimit {
		view = view[:listLimit]
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.List(view, listWidth, cfg.UI.MaxKeywords))
	stats := state.Stats()
	fmt.Fprintf(out, "\n%s · %s\n", render.Stats(stats.Shown, stats.Total), state.Filter().Describe(state.Topics()))
	return nil
}
