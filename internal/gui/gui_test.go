//go:build !nogui
// +build !nogui

package gui_test

import (
	"testing"
	"time"

	"rayline/internal/bridge/bridgetest"
	"rayline/internal/gui"
	"rayline/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type immediate struct{}

func (immediate) AfterFunc(_ time.Duration, fn func()) func() {
	fn()
	return func() {}
}

type hideEngine struct {
	*bridgetest.Recorder
	hide func()
}

func (e hideEngine) Hide() {
	e.Recorder.Hide()
	e.hide()
}

func newTestWindow(t *testing.T) (*gui.Window, *bridgetest.Recorder) {
	t.Helper()
	a := test.NewTempApp(t)
	w := gui.NewWindow(a, gui.WithScheduler(immediate{}))
	rec := &bridgetest.Recorder{}
	w.Bridge().AttachEngine(hideEngine{Recorder: rec, hide: w.Hide})
	w.Show()
	return w, rec
}

func focused(t *testing.T, w *gui.Window) fyne.Focusable {
	t.Helper()
	f := w.FyneWindow().Canvas().Focused()
	require.NotNil(t, f, "search entry has focus")
	return f
}

func TestWindowPaletteFlow(t *testing.T) {
	w, rec := newTestWindow(t)
	assert.Equal(t, 1, rec.Count("startIndexing"))

	w.Bridge().SetResults([]types.FileResult{
		{ID: "/d/notes.txt", Name: "notes.txt", Path: "/d/notes.txt", Kind: types.KindFile},
		{ID: "/d/report.pdf", Name: "report.pdf", Path: "/d/report.pdf", Kind: types.KindFile},
		{ID: "/a/editor.exe", Name: "editor.exe", Path: "/a/editor.exe", Kind: types.KindApp},
	})
	assert.Equal(t, "1/3", w.Controller().PositionLabel())

	entry := focused(t, w)
	test.Type(entry, "e")
	assert.Equal(t, "e", w.Controller().Query())
	assert.Equal(t, 1, rec.Count("search"))

	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDown})
	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDown})
	assert.Equal(t, 2, w.Controller().ActiveIndex())

	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	opens := rec.Named("open")
	require.Len(t, opens, 1)
	assert.Equal(t, []string{"/a/editor.exe", "App"}, opens[0].Args)

	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Equal(t, 1, rec.Count("hide"))
	assert.False(t, w.Controller().Mounted())
}

func TestWindowOtherKeysReachEntry(t *testing.T) {
	w, rec := newTestWindow(t)
	entry := focused(t, w)

	test.Type(entry, "ab")
	entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, "a", w.Controller().Query())
	assert.Equal(t, 3, rec.Count("search"))
}
