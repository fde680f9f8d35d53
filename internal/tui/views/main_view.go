package views

import (
	"strings"

	"rayline/internal/tui/common"
	"rayline/internal/tui/components"
	"rayline/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView draws the search pill, the result rows, the status line and
// the key help inside the app frame.
func RenderMainView(m common.ModelReader) string {
	st := m.Styles()
	state := m.State()
	width := m.Width()

	var sb strings.Builder
	sb.WriteString(RenderSearchPill(m.InputView(), state.PositionLabel, st, width))
	sb.WriteString("\n")

	list := components.NewResultList(st)
	list.SetState(state)
	list.SetSize(width, m.MaxRows())
	list.SetNow(m.Now())
	sb.WriteString(list.View())

	if status := m.StatusView(); status != "" {
		sb.WriteString("\n\n" + status)
	}
	if help := m.HelpView(); help != "" {
		sb.WriteString("\n" + help)
	}

	return st.App.Width(width).Render(sb.String())
}

// RenderSearchPill frames the query input with the position label pushed to
// the right edge.
func RenderSearchPill(input, position string, st styles.Styles, width int) string {
	label := st.Position.Render(position)
	inner := width - st.Pill.GetHorizontalFrameSize()
	gap := max(inner-lipgloss.Width(input)-lipgloss.Width(label), 1)
	return st.Pill.Render(input + strings.Repeat(" ", gap) + label)
}
