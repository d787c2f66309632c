package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/tui"
)

var versionBanner bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		if versionBanner {
			fmt.Fprintln(out, tui.Banner(Version))
			return
		}
		fmt.Fprintf(out, "%s %s\n", tui.AppName, Version)
		fmt.Fprintln(out, "Podcast transcript browser")
		fmt.Fprintln(out, "github.com/pders01/castdex")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionBanner, "banner", false, "Print the logo banner")
}
