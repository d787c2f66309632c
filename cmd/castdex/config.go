package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/config"
)

var configGenCmd = &cobra.Command{
	Use:   "generate-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			return fmt.Errorf("failed to generate config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated default configuration at: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configGenCmd)
}
