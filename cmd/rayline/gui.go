package main

import (
	"context"

	"rayline/internal/gui"
	"rayline/internal/index"
	"rayline/internal/log"

	"github.com/spf13/cobra"
)

// guiCmd creates the GUI command for the CLI
func (a *app) guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the palette in a desktop window",
		Long:  `Open the search palette in a desktop window. Closing the window or pressing Escape quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return a.runGUI(ctx)
		},
	}
}

func (a *app) runGUI(ctx context.Context) error {
	if !gui.IsGUIAvailable() {
		return gui.Run(nil)
	}
	ix, err := a.newIndex()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return gui.Run(func(w *gui.Window) func() {
		engine := index.NewEngine(ix, w.Bridge(), a.engineOptions(index.WithHideHook(w.Hide), index.WithErrorHook(w.ReportError))...)
		detach := w.Bridge().AttachEngine(engine)
		if err := engine.Start(ctx); err != nil {
			log.LogWithError(err).Error("index engine did not start")
		}
		return func() {
			detach()
			engine.Stop()
		}
	}, gui.WithStartupDelay(a.cfg.StartupDelay()))
}
