package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rayline/internal/bridge"
	"rayline/internal/errors"
	"rayline/internal/index"
	"rayline/pkg/types"

	"github.com/spf13/cobra"
)

// collector is a bridge.Receiver that hands the first result set to a
// channel.
type collector struct {
	results chan []types.FileResult
}

func newCollector() *collector {
	return &collector{results: make(chan []types.FileResult, 1)}
}

func (c *collector) SetResults(results []types.FileResult) {
	select {
	case c.results <- results:
	default:
	}
}

func (c *collector) AppendResults([]types.FileResult) {}
func (c *collector) SetLoading(bool)                  {}
func (c *collector) FocusSearch()                     {}
func (c *collector) ClearSearch()                     {}

// searchCmd runs a single query through the engine.
func (a *app) searchCmd() *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the index once and print matches",
		Long:  `Build the index, run one query the same way the palette does, and print the matches.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			results, err := a.search(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			if len(results) == 0 {
				fmt.Println("No results")
				return nil
			}
			for _, r := range results {
				fmt.Printf("%-9s %s\n", r.KindOrDefault(), r.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results (0 for no limit)")
	return cmd
}

func (a *app) search(ctx context.Context, query string) ([]types.FileResult, error) {
	ix, err := a.newIndex()
	if err != nil {
		return nil, err
	}
	if err := ix.Build(ctx); err != nil {
		return nil, errors.NewKind(errors.IndexFailed, "error building index", err)
	}

	out := newCollector()
	b := bridge.New(bridge.Immediate)
	b.AttachReceiver(out)

	opts := a.engineOptions(index.WithWatch(false), index.WithCacheTTL(0))
	engine := index.NewEngine(ix, b, opts...)
	defer engine.Stop()
	b.AttachEngine(engine)

	b.Search(query)
	select {
	case results := <-out.results:
		return results, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
