package main

import (
	"rayline/internal/index"
	"rayline/internal/tui/styles"
)

// newIndex builds an empty index over the configured roots.
func (a *app) newIndex() (*index.Index, error) {
	w, err := index.NewWalker(a.cfg.ExpandedRoots(), a.cfg.Index.ExcludeDirs, a.cfg.Index.ExcludeFiles)
	if err != nil {
		return nil, err
	}
	return index.New(w), nil
}

func (a *app) engineOptions(extra ...index.EngineOption) []index.EngineOption {
	opts := []index.EngineOption{
		index.WithBatchSize(a.cfg.Index.BatchSize),
		index.WithRecentLimit(a.cfg.Palette.RecentLimit),
		index.WithCacheTTL(a.cfg.CacheTTL()),
		index.WithWatch(a.cfg.Index.Watch),
	}
	return append(opts, extra...)
}

func (a *app) styles() styles.Styles {
	t := a.cfg.Theme
	return styles.New(styles.Colors{
		Primary:  t.Primary,
		Success:  t.Success,
		Warning:  t.Warning,
		Error:    t.Error,
		Info:     t.Info,
		Emphasis: t.Emphasis,
		Border:   t.Border,
	})
}
