package main

import (
	"context"

	"rayline/internal/index"
	"rayline/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// tuiCmd represents the TUI command
func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the palette in the terminal",
		Long:  `Open the search palette in the terminal. This is the default when no command is given.`,
		Annotations: map[string]string{
			annotationScreen: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

func (a *app) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ix, err := a.newIndex()
	if err != nil {
		return err
	}

	m := tui.New(
		tui.WithStyles(a.styles()),
		tui.WithStartupDelay(a.cfg.StartupDelay()),
	)
	engine := index.NewEngine(ix, m.Bridge(), a.engineOptions(index.WithHideHook(m.Hide), index.WithErrorHook(m.ReportError))...)
	defer engine.Stop()
	m.Bridge().AttachEngine(engine)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := engine.Start(ctx); err != nil {
		return err
	}

	return tui.Run(m, tea.WithAltScreen())
}
