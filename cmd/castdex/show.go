package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/castdex/internal/detail"
	"github.com/pders01/castdex/internal/render"
)

var (
	showRaw   bool
	showWidth int
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Print one episode with its full transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown instead of rendering it")
	showCmd.Flags().IntVar(&showWidth, "width", 100, "Terminal width used for rendering")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	loader := detail.NewLoader(src.LoadDetails)
	ep, err := loader.Get(commandContext(cmd), args[0])
	if errors.Is(err, detail.ErrNotFound) {
		return fmt.Errorf("no episode with slug %q", args[0])
	}
	if err != nil {
		return err
	}

	md := render.Detail(ep)
	if showRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	out, err := render.NewMarkdown(cfg.UI.MarkdownStyle, cfg.UI.WordWrapMinWidth, cfg.UI.WordWrapMaxWidth).Render(md, showWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
