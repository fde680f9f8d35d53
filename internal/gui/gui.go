//go:build !nogui
// +build !nogui

// Package gui hosts the palette in a fyne window.
package gui

import (
	"time"

	"rayline/internal/bridge"
	"rayline/internal/log"
	"rayline/internal/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AppID keys the fyne preferences store.
const AppID = "io.github.rayline"

// Option configures a Window.
type Option func(*Window)

// WithStartupDelay sets the delay before indexing is requested.
func WithStartupDelay(d time.Duration) Option {
	return func(w *Window) { w.startupDelay = d }
}

// WithScheduler replaces the timer used for the startup delay.
func WithScheduler(s palette.Scheduler) Option {
	return func(w *Window) { w.sched = s }
}

// WithClock fixes the time used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Window) { w.now = now }
}

// Window is the desktop palette: a search entry with reset and step buttons,
// the result list and a status line. Every controller call happens on the
// fyne thread.
type Window struct {
	app    fyne.App
	win    fyne.Window
	ctrl   *palette.Controller
	keys   *palette.KeyDispatcher
	bridge *bridge.Bridge
	detach func()

	entry    *searchEntry
	list     *widget.List
	position *widget.Label
	status   *widget.Label
	reset    *widget.Button
	prev     *widget.Button
	next     *widget.Button
	failure  string

	startupDelay time.Duration
	sched        palette.Scheduler
	now          func() time.Time
	closed       bool
}

// dispatch marshals bridge traffic onto the fyne thread.
func dispatch(fn func()) {
	fyne.Do(fn)
}

// NewWindow builds the palette window on a. Attach an engine to Bridge()
// before calling Show.
func NewWindow(a fyne.App, opts ...Option) *Window {
	w := &Window{
		app:          a,
		keys:         palette.NewKeyDispatcher(),
		startupDelay: palette.DefaultStartupDelay,
		sched:        palette.DispatchScheduler{Dispatch: dispatch},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.bridge = bridge.New(dispatch)
	w.ctrl = palette.New(w.bridge,
		palette.WithStartupDelay(w.startupDelay),
		palette.WithFocusHook(w.focusEntry),
		palette.WithChangeHook(w.refresh),
	)
	w.detach = w.bridge.AttachReceiver(w.ctrl)

	w.win = a.NewWindow("Rayline")
	w.win.Resize(fyne.NewSize(640, 420))
	w.win.CenterOnScreen()
	w.win.SetOnClosed(w.teardown)

	w.entry = newSearchEntry(w.keys)
	w.entry.OnChanged = func(q string) {
		w.failure = ""
		w.ctrl.SetQuery(q)
	}
	w.position = widget.NewLabel("0/0")
	w.status = widget.NewLabel("")
	w.reset = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), w.button(w.ctrl.ResetQuery))
	w.prev = widget.NewButtonWithIcon("", theme.MoveUpIcon(), w.button(func() { w.ctrl.MoveActive(-1) }))
	w.next = widget.NewButtonWithIcon("", theme.MoveDownIcon(), w.button(func() { w.ctrl.MoveActive(+1) }))
	w.list = newResultList(w)

	controls := container.NewHBox(w.position, w.reset, w.prev, w.next)
	top := container.NewBorder(nil, nil, nil, controls, w.entry)
	w.win.SetContent(container.NewBorder(top, w.status, nil, nil, w.list))
	w.refresh()
	return w
}

// Bridge returns the bridge the engine attaches to.
func (w *Window) Bridge() *bridge.Bridge {
	return w.bridge
}

// Controller returns the palette controller.
func (w *Window) Controller() *palette.Controller {
	return w.ctrl
}

// FyneWindow exposes the underlying window.
func (w *Window) FyneWindow() fyne.Window {
	return w.win
}

// Show mounts the controller and shows the window with the entry focused.
func (w *Window) Show() {
	w.ctrl.Mount(w.keys, w.sched)
	w.win.Show()
	w.focusEntry()
}

// ReportError is the engine's error hook. The message stays in the status
// line until the query is edited.
func (w *Window) ReportError(err error) {
	dispatch(func() {
		w.failure = err.Error()
		w.status.SetText(w.failure)
	})
}

// button runs fn and hands focus back to the search entry.
func (w *Window) button(fn func()) func() {
	return func() {
		fn()
		w.focusEntry()
	}
}

// Hide is the engine's hide hook.
func (w *Window) Hide() {
	w.win.Close()
}

func (w *Window) teardown() {
	if w.closed {
		return
	}
	w.closed = true
	w.ctrl.Unmount()
	w.detach()
	w.bridge.Close()
	log.Debug("palette window closed")
}

func (w *Window) focusEntry() {
	w.win.Canvas().Focus(w.entry)
}

// refresh pushes controller state into the widgets.
func (w *Window) refresh() {
	if w.list == nil {
		return
	}
	state := w.ctrl.Snapshot()
	if w.entry.Text != state.Query {
		w.entry.SetText(state.Query)
		w.failure = ""
	}
	w.position.SetText(state.PositionLabel)
	if w.failure == "" {
		w.status.SetText(statusText(state))
	}

	// The active row is drawn by the list items; list selection only
	// carries pointer clicks.
	w.list.Refresh()
	if len(state.Filtered) > 0 {
		w.list.ScrollTo(state.ActiveIndex)
	}
}

func statusText(s palette.State) string {
	switch {
	case len(s.Filtered) == 0 && s.Loading && s.Total == 0:
		return "Indexing files..."
	case len(s.Filtered) == 0:
		return "No results"
	case s.Loading:
		return "Indexing..."
	}
	return ""
}

// Run opens the palette in a new fyne application and blocks until it is
// closed. attach wires an engine to the window before it is shown.
func Run(attach func(w *Window) (detach func()), opts ...Option) error {
	a := app.NewWithID(AppID)
	w := NewWindow(a, opts...)
	w.win.SetMaster()
	if attach != nil {
		defer attach(w)()
	}
	w.Show()
	a.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
