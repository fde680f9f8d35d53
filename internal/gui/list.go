//go:build !nogui
// +build !nogui

package gui

import (
	"image/color"

	"rayline/internal/palette"
	"rayline/internal/tui/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// newResultList renders the filtered view with the active row shaded.
// Clicking a row makes it active and opens it.
func newResultList(w *Window) *widget.List {
	list := widget.NewList(
		func() int {
			return len(w.ctrl.Filtered())
		},
		func() fyne.CanvasObject {
			name := widget.NewRichText()
			badge := widget.NewLabel("")
			meta := widget.NewRichText()
			bg := canvas.NewRectangle(color.Transparent)
			return container.NewStack(bg, container.NewVBox(container.NewBorder(nil, nil, nil, badge, name), meta))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			filtered := w.ctrl.Filtered()
			if id >= len(filtered) {
				return
			}
			item := filtered[id]
			query := w.ctrl.Query()

			stack := obj.(*fyne.Container)
			bg := stack.Objects[0].(*canvas.Rectangle)
			box := stack.Objects[1].(*fyne.Container)
			row := box.Objects[0].(*fyne.Container)
			name := row.Objects[0].(*widget.RichText)
			badge := row.Objects[1].(*widget.Label)
			meta := box.Objects[1].(*widget.RichText)

			name.Segments = highlighted(item.Name, query, widget.RichTextStyleStrong)
			name.Refresh()
			badge.SetText(string(item.Kind))

			segs := highlighted(item.MetaLeft, query, widget.RichTextStyleInline)
			if ago := components.TimeAgo(item.LastAccessTime, w.now()); ago != "" {
				segs = append(segs, &widget.TextSegment{Text: " · " + ago, Style: widget.RichTextStyleInline})
			}
			meta.Segments = segs
			meta.Refresh()

			bg.FillColor = color.Transparent
			if id == w.ctrl.ActiveIndex() {
				bg.FillColor = theme.Color(theme.ColorNameSelection)
			}
			bg.Refresh()
		},
	)

	list.OnSelected = func(id widget.ListItemID) {
		// Unselect so the next click on the same row fires again
		list.Unselect(id)
		w.ctrl.SetActiveIndex(id)
		w.ctrl.ActivateCurrent()
		w.focusEntry()
	}
	return list
}

// highlighted splits text into rich text segments, with matches of query in
// the emphasis style.
func highlighted(text, query string, base widget.RichTextStyle) []widget.RichTextSegment {
	match := base
	match.TextStyle = fyne.TextStyle{Bold: true, Italic: true}
	match.ColorName = theme.ColorNamePrimary

	var segs []widget.RichTextSegment
	for _, seg := range palette.Highlight(text, query) {
		style := base
		if seg.Match {
			style = match
		}
		segs = append(segs, &widget.TextSegment{Text: seg.Text, Style: style})
	}
	return segs
}
