package index

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"rayline/internal/bridge"
	"rayline/internal/errors"
	"rayline/internal/log"
	"rayline/internal/opener"
	"rayline/internal/palette"
	"rayline/internal/watch"
	"rayline/pkg/types"

	"github.com/patrickmn/go-cache"
)

// DefaultRecentLimit is the number of recent entries pushed on start.
const DefaultRecentLimit = 60

// Launcher opens a path with the platform's default handler.
type Launcher interface {
	Open(ctx context.Context, path, kind string) error
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithBatchSize sets the progressive build batch size.
func WithBatchSize(n int) EngineOption {
	return func(e *Engine) { e.batchSize = n }
}

// WithRecentLimit sets how many recent entries StartIndexing pushes.
func WithRecentLimit(n int) EngineOption {
	return func(e *Engine) { e.recentLimit = n }
}

// WithCacheTTL caches search results for ttl. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) EngineOption {
	return func(e *Engine) { e.cacheTTL = ttl }
}

// WithLauncher replaces the default opener.
func WithLauncher(l Launcher) EngineOption {
	return func(e *Engine) { e.launcher = l }
}

// WithHideHook is called when the palette asks to be hidden. It runs on the
// caller's thread.
func WithHideHook(fn func()) EngineOption {
	return func(e *Engine) { e.hide = fn }
}

// WithErrorHook receives failures the user should see: launch errors and
// index builds that stop early. Launch errors arrive on the caller's thread,
// build errors on an engine goroutine.
func WithErrorHook(fn func(error)) EngineOption {
	return func(e *Engine) { e.onError = fn }
}

// WithWatch keeps the index live with a file system watcher after Start.
func WithWatch(enabled bool) EngineOption {
	return func(e *Engine) { e.watchEnabled = enabled }
}

// Engine serves palette commands from an Index and pushes results to a
// bridge.Receiver. Every push happens on an engine goroutine, never on the
// caller's, so hosts may dispatch by blocking on their UI loop.
type Engine struct {
	index *Index
	out   bridge.Receiver

	batchSize    int
	recentLimit  int
	cacheTTL     time.Duration
	launcher     Launcher
	hide         func()
	onError      func(error)
	watchEnabled bool

	cache *cache.Cache

	// buildMu allows one crawl at a time.
	buildMu sync.Mutex
	// deliverMu keeps pushes from different goroutines whole and ordered.
	deliverMu sync.Mutex
	searchSeq atomic.Uint64
	// lastQuery is the normalized query of the newest Search.
	lastQuery atomic.Value

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	watcher *watch.Watcher
	started atomic.Bool
}

var _ bridge.Engine = (*Engine)(nil)

// NewEngine creates an engine answering from ix and pushing to out.
func NewEngine(ix *Index, out bridge.Receiver, opts ...EngineOption) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		index:       ix,
		out:         out,
		batchSize:   DefaultBatchSize,
		recentLimit: DefaultRecentLimit,
		launcher:    opener.New(),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cacheTTL > 0 {
		e.cache = cache.New(e.cacheTTL, 2*e.cacheTTL)
	}
	return e
}

// Index returns the engine's index.
func (e *Engine) Index() *Index {
	return e.index
}

func (e *Engine) deliver(fn func(out bridge.Receiver)) {
	if e.out == nil || e.ctx.Err() != nil {
		return
	}
	e.deliverMu.Lock()
	defer e.deliverMu.Unlock()
	fn(e.out)
}

func (e *Engine) goSafe(fn func()) {
	if e.ctx.Err() != nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
}

// Start runs the initial crawl in the background and, when enabled, starts
// watching the roots. ctx ending stops the engine.
func (e *Engine) Start(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return nil
	}

	if e.watchEnabled {
		if err := e.startWatcher(); err != nil {
			log.LogWithError(err).Warn("live index updates disabled")
		}
	}

	e.goSafe(func() {
		e.buildMu.Lock()
		defer e.buildMu.Unlock()
		if err := e.index.Build(e.ctx); err != nil {
			e.buildFailed("initial index build stopped", err)
			return
		}
		e.flushCache()
	})

	go func() {
		select {
		case <-ctx.Done():
			e.Stop()
		case <-e.ctx.Done():
		}
	}()
	return nil
}

// Stop cancels builds, stops the watcher and waits for engine goroutines.
func (e *Engine) Stop() {
	e.cancel()
	if e.watcher != nil {
		e.watcher.Stop()
	}
	e.wg.Wait()
}

// StartIndexing implements bridge.Engine. Recent entries are pushed when the
// index has any; otherwise a progressive crawl streams batches while the
// palette shows its loading state.
func (e *Engine) StartIndexing() {
	e.goSafe(func() {
		if e.pushRecent() {
			return
		}

		e.deliver(func(out bridge.Receiver) { out.SetLoading(true) })

		e.buildMu.Lock()
		defer e.buildMu.Unlock()

		// A crawl that held the lock may have filled the index meanwhile
		if e.pushRecent() {
			return
		}

		err := e.index.BuildProgressive(e.ctx, e.batchSize, func(batch []types.FileResult) {
			e.deliver(func(out bridge.Receiver) { out.AppendResults(batch) })
		})
		if err != nil {
			e.buildFailed("progressive index build stopped", err)
		}
		e.flushCache()
		e.deliver(func(out bridge.Receiver) { out.SetLoading(false) })
	})
}

func (e *Engine) buildFailed(msg string, err error) {
	if e.ctx.Err() != nil {
		log.LogWithFields(log.F("error", err)).Debug(msg)
		return
	}
	err = errors.NewKind(errors.IndexFailed, msg, err)
	log.LogWithError(err).Warn(msg)
	e.report(err)
}

func (e *Engine) report(err error) {
	if e.onError != nil {
		e.onError(err)
	}
}

func (e *Engine) pushRecent() bool {
	recent := e.index.Recent(e.recentLimit)
	if len(recent) == 0 {
		return false
	}
	e.deliver(func(out bridge.Receiver) {
		out.SetResults(recent)
		out.SetLoading(false)
	})
	return true
}

// Search implements bridge.Engine. Results for a query superseded by a
// newer Search are dropped.
func (e *Engine) Search(query string) {
	key := palette.Fold(strings.TrimSpace(query))
	e.lastQuery.Store(key)
	seq := e.searchSeq.Add(1)

	e.goSafe(func() {
		results, hit := e.cached(key)
		if !hit {
			results = e.index.Search(key, palette.ResultLimit)
			if e.cache != nil {
				e.cache.SetDefault(key, results)
			}
		}

		e.deliver(func(out bridge.Receiver) {
			if e.searchSeq.Load() != seq {
				log.LogWithFields(log.F("query", query)).Debug("dropping stale search results")
				return
			}
			out.SetResults(results)
		})
	})
}

func (e *Engine) cached(key string) ([]types.FileResult, bool) {
	if e.cache == nil {
		return nil, false
	}
	v, ok := e.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]types.FileResult), true
}

func (e *Engine) flushCache() {
	if e.cache != nil {
		e.cache.Flush()
	}
}

// Open implements bridge.Engine.
func (e *Engine) Open(path string, kind string) {
	if err := e.launcher.Open(e.ctx, path, kind); err != nil {
		log.LogError(err, "failed to open result")
		e.report(err)
		// The file is gone; stop offering it
		if errors.IsFileNotFound(err) && e.index.Remove(path) {
			e.flushCache()
			e.goSafe(e.refresh)
		}
	}
}

// Hide implements bridge.Engine.
func (e *Engine) Hide() {
	if e.hide != nil {
		e.hide()
	}
}

func (e *Engine) startWatcher() error {
	w, err := watch.New(watch.WithFilter(e.index.Walker().Skip), watch.WithBuffer(max(e.batchSize*4, 64)))
	if err != nil {
		return err
	}
	for _, root := range e.index.Walker().Roots() {
		if err := w.AddTree(root); err != nil {
			entry := log.LogWithError(err).With(log.F("root", root))
			if errors.IsFileAccessDenied(err) {
				entry.Warn("root not watched")
			} else {
				entry.Debug("root not watched")
			}
		}
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	e.watcher = w
	log.LogWithFields(log.F("directories", len(w.GetDirectories()))).Debug("watching roots")

	e.goSafe(func() {
		events := w.FileChannel()
		stale := false
		for mod := range events {
			stale = e.apply(mod) || stale
			// Refresh once a burst of events has drained
			if stale && len(events) == 0 {
				e.refresh()
				stale = false
			}
		}
	})
	return nil
}

// apply updates the index for one watch event. New paths are appended to
// the palette; it reports whether results already shown may be out of date.
func (e *Engine) apply(mod watch.FileModification) bool {
	switch mod.Op {
	case watch.Removed:
		if e.index.Remove(mod.Path) {
			e.flushCache()
			return true
		}
	case watch.Created, watch.Modified:
		if mod.Info == nil {
			return false
		}
		res, added := e.index.Add(mod.Path, mod.Info)
		e.flushCache()
		if added {
			e.deliver(func(out bridge.Receiver) { out.AppendResults([]types.FileResult{res}) })
			return false
		}
		return true
	}
	return false
}

// refresh answers the newest query again so changed entries show their
// current state. A Search issued meanwhile wins.
func (e *Engine) refresh() {
	seq := e.searchSeq.Load()
	query, _ := e.lastQuery.Load().(string)
	results := e.index.Search(query, palette.ResultLimit)
	e.deliver(func(out bridge.Receiver) {
		if e.searchSeq.Load() != seq {
			return
		}
		out.SetResults(results)
	})
}
