package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/render"
	"github.com/pders01/castdex/internal/search"
)

var (
	searchLimit   int
	searchVerbose bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank episodes whose transcripts mention a phrase",
	Long: `Search titles, guests, keywords, descriptions and full transcripts.

Results are ranked with title matches weighted highest and transcript
matches lowest. This loads the full episode feed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Report how many episodes were searched")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	_, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	details, err := src.LoadDetails(commandContext(cmd))
	if err != nil {
		return err
	}

	searcher := search.New(details)
	if c, ok := searcher.(io.Closer); ok {
		defer c.Close()
	}

	results, err := searcher.Search(query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if c, ok := searcher.(search.DocCounter); ok && searchVerbose {
		if n, err := c.DocCount(); err == nil {
			fmt.Fprintf(out, "Searched %d episodes\n", n)
		}
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No matches")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. %s · %s (%s)\n", i+1, render.Inline(r.Guest), render.Inline(r.Title), render.Inline(r.Slug))
		if r.Snippet != "" {
			fmt.Fprintf(out, "    %s\n", render.Inline(r.Snippet))
		}
	}
	return nil
}
