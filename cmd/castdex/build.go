package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/builder"
	"github.com/pders01/castdex/internal/feed"
	"github.com/pders01/castdex/internal/plugins"
)

var (
	buildOut      string
	buildRSS      string
	buildSnapshot string
)

var buildCmd = &cobra.Command{
	Use:   "build <root>",
	Short: "Build the JSON feeds from a transcript archive",
	Long: `Build reads <root>/episodes/<slug>/transcript.md and <root>/index/*.md and
writes episodes.json, episodes-index.json and topics.json.

Examples:
  castdex build ./archive
  castdex build ./archive --out ./public/data
  castdex build ./archive --rss https://www.youtube.com/@creator
  castdex build ./archive --snapshot ~/.castdex/catalog.db`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory (default <root>/data)")
	buildCmd.Flags().StringVar(&buildRSS, "rss", "", "Podcast or YouTube feed used to fill in missing metadata")
	buildCmd.Flags().StringVar(&buildSnapshot, "snapshot", "", "Also write a bbolt snapshot to this path")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := builder.Build(commandContext(cmd), builder.Options{
		Root:     args[0],
		OutDir:   buildOut,
		RSS:      buildRSS,
		Snapshot: buildSnapshot,
		Fetcher:  feed.NewFetcher(cfg),
		Resolver: plugins.Default(cfg.Feeds.HTTPTimeout),
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, s := range res.Skipped {
		fmt.Fprintf(out, "! skipped %s\n", s)
	}
	if buildRSS != "" {
		source := res.FeedURL
		if res.FeedTitle != "" {
			source = res.FeedTitle + " (" + res.FeedURL + ")"
		}
		fmt.Fprintf(out, "Enriched %d episodes from %s\n", res.Enriched, source)
	}
	fmt.Fprintf(out, "✓ Built %d episodes and %d topics into %s\n", len(res.Episodes), len(res.Topics), res.OutDir)
	if buildSnapshot != "" {
		fmt.Fprintf(out, "✓ Wrote snapshot %s\n", buildSnapshot)
	}
	return nil
}
