package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"rayline/internal/errors"
	"rayline/internal/tui/components"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// indexCmd crawls the configured roots once and reports what it found.
func (a *app) indexCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the index and print statistics",
		Long:  `Crawl the configured roots once, print how many files and folders were found, and list the most recently modified entries.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			ix, err := a.newIndex()
			if err != nil {
				return err
			}

			start := time.Now()
			if err := ix.Build(ctx); err != nil {
				return errors.NewKind(errors.IndexFailed, "error building index", err)
			}
			files, folders := ix.Len()

			fmt.Printf("Indexed %s files and %s folders in %s\n",
				humanize.Comma(int64(files)), humanize.Comma(int64(folders)), time.Since(start).Round(time.Millisecond))
			for _, root := range ix.Walker().Roots() {
				fmt.Printf("  root: %s\n", root)
			}

			if recent > 0 {
				now := time.Now()
				fmt.Println("\nRecently modified:")
				for _, r := range ix.Recent(recent) {
					fmt.Printf("  %-9s %-40s %s\n", r.KindOrDefault(), r.Name, components.TimeAgo(r.LastAccessTime, now))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "r", 10, "Number of recent entries to list (0 to skip)")
	return cmd
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
