package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive episode browser",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	tui.ApplyTheme(cfg.UI.Colors)

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	app := tui.NewApp(src, cfg, tui.WithContext(ctx))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
