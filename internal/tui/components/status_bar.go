package components

import (
	"rayline/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingText is shown in the footer while results keep streaming in.
const LoadingText = "Indexing..."

type StatusBar struct {
	text    string
	isError bool
	styles  styles.Styles
	spinner spinner.Model
	loading bool
}

func NewStatusBar(st styles.Styles) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = st.Loading

	return &StatusBar{
		styles:  st,
		spinner: s,
	}
}

func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

func (s *StatusBar) SetError(err error) {
	s.text = err.Error()
	s.isError = true
}

// Tick starts the spinner animation.
func (s *StatusBar) Tick() tea.Msg {
	return s.spinner.Tick()
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders either the loading indicator or the last status message.
func (s *StatusBar) View() string {
	switch {
	case s.loading:
		return s.spinner.View() + " " + s.styles.Loading.Render(LoadingText)
	case s.isError:
		return s.styles.Error.Render(s.text)
	case s.text != "":
		return s.styles.Status.Render(s.text)
	}
	return ""
}
