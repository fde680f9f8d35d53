package styles

import "github.com/charmbracelet/lipgloss"

// Styles defines the palette UI styles
type Styles struct {
	App       lipgloss.Style
	Pill      lipgloss.Style
	Position  lipgloss.Style
	Row       lipgloss.Style
	ActiveRow lipgloss.Style
	Name      lipgloss.Style
	Match     lipgloss.Style
	Meta      lipgloss.Style
	Badge     lipgloss.Style
	Empty     lipgloss.Style
	Status    lipgloss.Style
	Loading   lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// New builds the style set for a theme.
func New(c Colors) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
		Pill: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(c.Info)).
			Padding(0, 1),
		Position: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Info)),
		Row: lipgloss.NewStyle().
			PaddingLeft(2),
		ActiveRow: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(c.Primary)).
			PaddingLeft(1),
		Name: lipgloss.NewStyle().
			Bold(true),
		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Success)).
			Underline(true),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Info)),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Emphasis)).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Info)).
			Padding(1, 2),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Info)),
		Loading: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Warning)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Info)),
	}
}
