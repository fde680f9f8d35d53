//go:build !nogui
// +build !nogui

package gui

import (
	"rayline/internal/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

var paletteKeys = map[fyne.KeyName]string{
	fyne.KeyEscape: palette.KeyEscape,
	fyne.KeyDown:   palette.KeyArrowDown,
	fyne.KeyUp:     palette.KeyArrowUp,
	fyne.KeyReturn: palette.KeyEnter,
	fyne.KeyEnter:  palette.KeyEnter,
}

// searchEntry is the query input. Palette keys go through the key dispatcher
// first and only reach the entry when no listener prevented them.
type searchEntry struct {
	widget.Entry
	keys *palette.KeyDispatcher
}

func newSearchEntry(keys *palette.KeyDispatcher) *searchEntry {
	e := &searchEntry{keys: keys}
	e.ExtendBaseWidget(e)
	e.PlaceHolder = "Search files…"
	return e
}

// TypedKey implements fyne.Focusable.
func (e *searchEntry) TypedKey(ev *fyne.KeyEvent) {
	if name, ok := paletteKeys[ev.Name]; ok && e.keys.Dispatch(name) {
		return
	}
	e.Entry.TypedKey(ev)
}
