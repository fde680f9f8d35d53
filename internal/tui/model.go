// Package tui hosts the palette in a terminal with bubbletea.
//
// The update loop is the controller's thread: bridge events and scheduled
// callbacks are queued on an inbox and delivered back to Update as
// messages.DispatchMsg. Engine failures travel the same inbox as
// messages.ErrorMsg.
package tui

import (
	"sync"
	"time"

	"rayline/internal/bridge"
	"rayline/internal/errors"
	"rayline/internal/log"
	"rayline/internal/palette"
	"rayline/internal/tui/components"
	"rayline/internal/tui/messages"
	"rayline/internal/tui/styles"
	"rayline/internal/tui/views"
	"rayline/pkg/types"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Palette key names for the terminal keys the controller consumes.
var paletteKeys = map[string]string{
	"esc":   palette.KeyEscape,
	"down":  palette.KeyArrowDown,
	"up":    palette.KeyArrowUp,
	"enter": palette.KeyEnter,
}

// Option configures a Model.
type Option func(*Model)

// WithStyles sets the style set.
func WithStyles(st styles.Styles) Option {
	return func(m *Model) { m.styles = st }
}

// WithStartupDelay sets the delay before indexing is requested.
func WithStartupDelay(d time.Duration) Option {
	return func(m *Model) { m.startupDelay = d }
}

// WithScheduler replaces the timer used for the startup delay.
func WithScheduler(s palette.Scheduler) Option {
	return func(m *Model) { m.sched = s }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyPath = write }
}

// WithClock fixes the time used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithMaxRows sets the number of visible results.
func WithMaxRows(n int) Option {
	return func(m *Model) { m.maxRows = n }
}

type Model struct {
	ctrl   *palette.Controller
	keys   *palette.KeyDispatcher
	bridge *bridge.Bridge
	sched  palette.Scheduler

	inbox     chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
	detach    func()

	input  textinput.Model
	status *components.StatusBar
	help   help.Model
	keymap types.KeyMap
	styles styles.Styles

	startupDelay time.Duration
	copyPath     func(string) error
	now          func() time.Time
	width        int
	maxRows      int
	hidden       bool
}

// New creates the terminal palette. Attach an engine to Bridge() before
// running the program.
func New(opts ...Option) *Model {
	m := &Model{
		keys:         palette.NewKeyDispatcher(),
		inbox:        make(chan tea.Msg, 64),
		done:         make(chan struct{}),
		help:         help.New(),
		keymap:       types.DefaultKeyMap(),
		styles:       styles.Theme,
		startupDelay: palette.DefaultStartupDelay,
		copyPath:     clipboard.WriteAll,
		now:          time.Now,
		width:        72,
		maxRows:      8,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sched == nil {
		m.sched = palette.DispatchScheduler{Dispatch: m.dispatch}
	}

	m.input = textinput.New()
	m.input.Placeholder = "Search files…"
	m.input.Prompt = "› "
	m.input.Focus()

	m.status = components.NewStatusBar(m.styles)

	m.bridge = bridge.New(m.dispatch)
	m.ctrl = palette.New(m.bridge,
		palette.WithStartupDelay(m.startupDelay),
		palette.WithFocusHook(func() { m.input.Focus() }),
	)
	m.detach = m.bridge.AttachReceiver(m.ctrl)
	return m
}

// Bridge returns the bridge the engine attaches to.
func (m *Model) Bridge() *bridge.Bridge {
	return m.bridge
}

// Controller returns the palette controller.
func (m *Model) Controller() *palette.Controller {
	return m.ctrl
}

// Hide is the engine's hide hook. It runs inside Update, so the program quits
// once the current message is handled.
func (m *Model) Hide() {
	m.hidden = true
}

// ReportError shows err in the status line. It is the engine's error hook
// and may be called from Update itself, so it never blocks.
func (m *Model) ReportError(err error) {
	go m.post(messages.ErrorMsg{Err: err})
}

// dispatch queues fn for the update loop.
func (m *Model) dispatch(fn func()) {
	m.post(messages.DispatchMsg{Fn: fn})
}

// post blocks while the inbox is full and gives up once the model is closed.
func (m *Model) post(msg tea.Msg) {
	if m.closed() {
		return
	}
	select {
	case m.inbox <- msg:
	case <-m.done:
	}
}

func (m *Model) closed() bool {
	select {
	case <-m.done:
		return true
	default:
		return false
	}
}

func (m *Model) waitForDispatch() tea.Msg {
	if m.closed() {
		return nil
	}
	select {
	case msg := <-m.inbox:
		return msg
	case <-m.done:
		return nil
	}
}

// Init implements tea.Model. Mounting happens here so the startup request is
// scheduled once the loop is running.
func (m *Model) Init() tea.Cmd {
	m.ctrl.Mount(m.keys, m.sched)
	return tea.Batch(textinput.Blink, m.status.Tick, m.waitForDispatch)
}

// Close unmounts the controller and detaches it from the bridge. Pending
// dispatches are dropped.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.ctrl.Unmount()
		m.detach()
		m.bridge.Close()
		close(m.done)
	})
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.DispatchMsg:
		msg.Fn()
		cmd = m.waitForDispatch

	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, 20)
		m.maxRows = max((msg.Height-8)/2, 1)

	case messages.ClipboardMsg:
		if msg.Err != nil {
			m.status.SetError(errors.Wrap(msg.Err, "copy failed"))
		} else {
			m.status.SetText("Copied " + msg.Path)
		}

	case messages.ErrorMsg:
		m.status.SetError(msg.Err)
		cmd = m.waitForDispatch

	default:
		cmd = m.status.Update(msg)
		if cmd == nil {
			m.input, cmd = m.input.Update(msg)
		}
	}

	if m.hidden {
		return m.quit()
	}
	m.status.SetLoading(m.ctrl.IsLoading() && len(m.ctrl.Results()) > 0)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.hidden = true
		return nil
	case key.Matches(msg, m.keymap.CopyPath):
		return m.copyActive()
	case key.Matches(msg, m.keymap.Reset):
		m.input.Reset()
		m.ctrl.ResetQuery()
		return nil
	}

	name, ok := paletteKeys[msg.String()]
	if !ok {
		name = msg.String()
	}
	if m.keys.Dispatch(name) {
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.ctrl.Query() {
		m.ctrl.SetQuery(v)
	}
	return cmd
}

func (m *Model) copyActive() tea.Cmd {
	item, ok := m.ctrl.Active()
	if !ok {
		return nil
	}
	write := m.copyPath
	return func() tea.Msg {
		err := write(item.Path)
		if err != nil {
			log.LogWithFields(log.F("path", item.Path), log.F("error", err)).Warn("clipboard write failed")
		}
		return messages.ClipboardMsg{Path: item.Path, Err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.hidden {
		return ""
	}
	return views.RenderMainView(m)
}

// State implements common.ModelReader.
func (m *Model) State() palette.State {
	return m.ctrl.Snapshot()
}

// InputView implements common.ModelReader.
func (m *Model) InputView() string {
	return m.input.View()
}

// StatusView implements common.ModelReader.
func (m *Model) StatusView() string {
	return m.status.View()
}

// HelpView implements common.ModelReader.
func (m *Model) HelpView() string {
	return m.styles.Help.Render(m.help.ShortHelpView(m.keymap.ShortHelp()))
}

// Styles implements common.ModelReader.
func (m *Model) Styles() styles.Styles {
	return m.styles
}

// Width implements common.ModelReader.
func (m *Model) Width() int {
	return m.width
}

// MaxRows implements common.ModelReader.
func (m *Model) MaxRows() int {
	return m.maxRows
}

// Now implements common.ModelReader.
func (m *Model) Now() time.Time {
	return m.now()
}

// Run starts the program and blocks until the palette is hidden or quit.
func Run(m *Model, opts ...tea.ProgramOption) error {
	defer m.Close()
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
