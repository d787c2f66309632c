package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/render"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic taxonomy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, src, err := openSource()
		if err != nil {
			return err
		}
		defer src.Close()

		cat, err := src.LoadCatalog(commandContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(cat.Topics) == 0 {
			fmt.Fprintln(out, "No topics")
			return nil
		}
		for _, t := range cat.Topics {
			fmt.Fprintf(out, "%-32s %s\n", render.Inline(t.Name), render.TopicLabel(t))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
