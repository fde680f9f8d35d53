// Package palette implements the quick-launcher palette: the result store,
// query filtering, and the keyboard-driven selection state machine.
//
// A Controller is owned by a single host thread. Engine traffic reaches it
// through a bridge.Bridge whose dispatcher marshals calls onto that thread, so
// the controller itself holds no locks.
package palette

import (
	"fmt"
	"time"

	"rayline/internal/bridge"
	"rayline/internal/log"
	"rayline/pkg/types"
)

// DefaultStartupDelay separates mounting from the start-indexing request so
// the host can finish wiring first.
const DefaultStartupDelay = 150 * time.Millisecond

// Phase summarizes the indexing lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseIndexing
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIndexing:
		return "indexing"
	case PhaseReady:
		return "ready"
	}
	return "idle"
}

// State is a read-only snapshot for renderers.
type State struct {
	Query         string
	Filtered      []types.FileResult
	ActiveIndex   int
	Loading       bool
	Total         int
	PositionLabel string
	Phase         Phase
}

// Option configures a Controller.
type Option func(*Controller)

// WithStartupDelay overrides DefaultStartupDelay.
func WithStartupDelay(d time.Duration) Option {
	return func(c *Controller) { c.startupDelay = d }
}

// WithReporter receives every malformed result the store drops.
func WithReporter(report func(error)) Option {
	return func(c *Controller) { c.report = report }
}

// WithFocusHook is called when the engine asks for input focus.
func WithFocusHook(fn func()) Option {
	return func(c *Controller) { c.onFocus = fn }
}

// WithClearSearchHook is called on the engine's clearSearch event. The
// palette itself changes nothing on clearSearch.
func WithClearSearchHook(fn func()) Option {
	return func(c *Controller) { c.onClearSearch = fn }
}

// WithChangeHook is called after any state change, for hosts that must
// schedule a redraw.
func WithChangeHook(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns the query and active selection, derives the filtered view,
// and turns user intent into outbound bridge commands. It implements
// bridge.Receiver.
type Controller struct {
	out   bridge.Engine
	store *ResultStore

	query       string
	filtered    []types.FileResult
	activeIndex int
	loading     bool

	startupDelay      time.Duration
	mounted           bool
	indexingRequested bool
	unsubscribeKeys   func()
	cancelStartup     func()

	report        func(error)
	onFocus       func()
	onClearSearch func()
	onChange      func()
}

var _ bridge.Receiver = (*Controller)(nil)

// New creates a controller sending commands to out, which may be nil.
func New(out bridge.Engine, opts ...Option) *Controller {
	c := &Controller{
		out:          out,
		startupDelay: DefaultStartupDelay,
		report: func(err error) {
			log.LogWithError(err).Warn("dropping malformed result")
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = NewResultStore(func(err error) {
		if c.report != nil {
			c.report(err)
		}
	})
	c.filtered = Filter("", nil)
	return c
}

// Mount subscribes the keyboard listener and schedules the one-time
// start-indexing request. Mounting an already mounted controller does
// nothing.
func (c *Controller) Mount(keys KeySource, sched Scheduler) {
	if c.mounted {
		return
	}
	c.mounted = true
	c.indexingRequested = false

	if keys != nil {
		c.unsubscribeKeys = keys.Subscribe(c.HandleKey)
	}
	if sched != nil {
		c.cancelStartup = sched.AfterFunc(c.startupDelay, c.requestIndexing)
	} else {
		c.requestIndexing()
	}
}

// Unmount releases the keyboard listener and cancels a pending
// start-indexing request.
func (c *Controller) Unmount() {
	if c.unsubscribeKeys != nil {
		c.unsubscribeKeys()
		c.unsubscribeKeys = nil
	}
	if c.cancelStartup != nil {
		c.cancelStartup()
		c.cancelStartup = nil
	}
	c.mounted = false
}

// Mounted reports whether the controller is mounted.
func (c *Controller) Mounted() bool {
	return c.mounted
}

func (c *Controller) requestIndexing() {
	if !c.mounted || c.indexingRequested {
		return
	}
	c.indexingRequested = true
	log.Debug("requesting start of indexing")
	if c.out != nil {
		c.out.StartIndexing()
	}
	c.changed()
}

// SetQuery replaces the query, refilters, and notifies the engine. An
// unchanged query is neither refiltered nor sent.
func (c *Controller) SetQuery(q string) {
	if q == c.query {
		return
	}
	c.query = q
	c.recompute()
	if c.out != nil {
		c.out.Search(q)
	}
	c.changed()
}

// ResetQuery clears the query text. Results are kept.
func (c *Controller) ResetQuery() {
	c.SetQuery("")
}

// MoveActive moves the selection one step in the sign of direction, clamped
// to the filtered view.
func (c *Controller) MoveActive(direction int) {
	switch {
	case direction > 0:
		c.activeIndex = min(c.activeIndex+1, max(len(c.filtered)-1, 0))
	case direction < 0:
		c.activeIndex = max(c.activeIndex-1, 0)
	default:
		return
	}
	c.changed()
}

// SetActiveIndex selects i, clamped to the filtered view. Hosts use it for
// pointer hover.
func (c *Controller) SetActiveIndex(i int) {
	c.activeIndex = max(min(i, len(c.filtered)-1), 0)
	c.changed()
}

// ActivateCurrent opens the active result. It does nothing when the view is
// empty.
func (c *Controller) ActivateCurrent() {
	item, ok := c.Active()
	if !ok {
		return
	}
	if c.out != nil {
		c.out.Open(item.Path, string(item.KindOrDefault()))
	}
}

// Close asks the engine to hide the palette.
func (c *Controller) Close() {
	if c.out != nil {
		c.out.Hide()
	}
}

// HandleKey applies the palette keyboard contract. Only the four palette
// keys are consumed; everything else is left for text entry.
func (c *Controller) HandleKey(ev *KeyEvent) {
	switch ev.Key {
	case KeyEscape:
		ev.PreventDefault()
		c.Close()
	case KeyArrowDown:
		ev.PreventDefault()
		c.MoveActive(+1)
	case KeyArrowUp:
		ev.PreventDefault()
		c.MoveActive(-1)
	case KeyEnter:
		ev.PreventDefault()
		c.ActivateCurrent()
	}
}

// SetResults implements bridge.Receiver.
func (c *Controller) SetResults(results []types.FileResult) {
	n := c.store.SetResults(results)
	log.LogWithFields(log.F("received", len(results)), log.F("stored", n)).Debug("results replaced")
	c.recompute()
	c.changed()
}

// AppendResults implements bridge.Receiver.
func (c *Controller) AppendResults(results []types.FileResult) {
	n := c.store.AppendResults(results)
	log.LogWithFields(log.F("received", len(results)), log.F("added", n), log.F("total", c.store.Len())).Debug("results appended")
	if n == 0 {
		return
	}
	c.recompute()
	c.changed()
}

// SetLoading implements bridge.Receiver.
func (c *Controller) SetLoading(loading bool) {
	c.loading = loading
	c.changed()
}

// FocusSearch implements bridge.Receiver.
func (c *Controller) FocusSearch() {
	if c.onFocus != nil {
		c.onFocus()
	}
}

// ClearSearch implements bridge.Receiver. It is a reserved hook.
func (c *Controller) ClearSearch() {
	if c.onClearSearch != nil {
		c.onClearSearch()
	}
}

func (c *Controller) recompute() {
	c.filtered = Filter(c.query, c.store.Results())
	if c.activeIndex >= len(c.filtered) {
		c.activeIndex = 0
	}
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Query returns the query text as typed.
func (c *Controller) Query() string {
	return c.query
}

// Filtered returns the current view. Callers must not modify it.
func (c *Controller) Filtered() []types.FileResult {
	return c.filtered
}

// ActiveIndex returns the selected position in the filtered view.
func (c *Controller) ActiveIndex() int {
	return c.activeIndex
}

// Active returns the selected result, if the view is non-empty.
func (c *Controller) Active() (types.FileResult, bool) {
	if len(c.filtered) == 0 {
		return types.FileResult{}, false
	}
	return c.filtered[c.activeIndex], true
}

// IsLoading reports the engine's loading flag.
func (c *Controller) IsLoading() bool {
	return c.loading
}

// Results returns the full stored set. Callers must not modify it.
func (c *Controller) Results() []types.FileResult {
	return c.store.Results()
}

// PositionLabel renders the selection as "n/total", or "0/0".
func (c *Controller) PositionLabel() string {
	if len(c.filtered) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", c.activeIndex+1, len(c.filtered))
}

// Phase derives the lifecycle phase from the loading flag and results.
func (c *Controller) Phase() Phase {
	switch {
	case c.loading:
		return PhaseIndexing
	case c.store.Len() > 0:
		return PhaseReady
	case c.indexingRequested:
		return PhaseReady
	}
	return PhaseIdle
}

// Snapshot captures the state for a renderer.
func (c *Controller) Snapshot() State {
	return State{
		Query:         c.query,
		Filtered:      c.filtered,
		ActiveIndex:   c.activeIndex,
		Loading:       c.loading,
		Total:         c.store.Len(),
		PositionLabel: c.PositionLabel(),
		Phase:         c.Phase(),
	}
}
