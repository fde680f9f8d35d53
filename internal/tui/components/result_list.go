package components

import (
	"strings"
	"time"

	"rayline/internal/palette"
	"rayline/internal/tui/styles"
	"rayline/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Placeholder texts for the result area.
const (
	IndexingText  = "Indexing files..."
	NoResultsText = "No results"
)

// ResultList renders the filtered view as two-line rows.
type ResultList struct {
	styles  styles.Styles
	state   palette.State
	width   int
	maxRows int
	now     time.Time
}

func NewResultList(st styles.Styles) *ResultList {
	return &ResultList{
		styles:  st,
		width:   60,
		maxRows: 8,
		now:     time.Now(),
	}
}

func (rl *ResultList) SetState(s palette.State) {
	rl.state = s
}

// SetSize sets the content width and the number of visible rows.
func (rl *ResultList) SetSize(width, rows int) {
	rl.width = max(width, 20)
	rl.maxRows = max(rows, 1)
}

// SetNow fixes the reference time for relative timestamps.
func (rl *ResultList) SetNow(now time.Time) {
	rl.now = now
}

// Window returns the visible slice bounds, keeping the active row in view.
func (rl *ResultList) Window() (start, end int) {
	n := len(rl.state.Filtered)
	if n <= rl.maxRows {
		return 0, n
	}
	start = max(rl.state.ActiveIndex-rl.maxRows+1, 0)
	return start, start + rl.maxRows
}

func (rl *ResultList) View() string {
	if len(rl.state.Filtered) == 0 {
		if rl.state.Loading && rl.state.Total == 0 {
			return rl.styles.Empty.Render(IndexingText)
		}
		return rl.styles.Empty.Render(NoResultsText)
	}

	start, end := rl.Window()
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, rl.renderRow(rl.state.Filtered[i], i == rl.state.ActiveIndex))
	}
	return strings.Join(rows, "\n")
}

func (rl *ResultList) renderRow(item types.FileResult, active bool) string {
	inner := rl.width - 3
	badge := ""
	if item.Kind != "" {
		badge = rl.styles.Badge.Render(string(item.Kind))
	}

	name := rl.highlight(truncateLeft(item.Name, inner-lipgloss.Width(badge)-1), rl.styles.Name)
	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(badge), 1)
	lines := []string{name + strings.Repeat(" ", gap) + badge}

	var meta []string
	if item.MetaLeft != "" {
		meta = append(meta, rl.highlight(truncateLeft(item.MetaLeft, inner-16), rl.styles.Meta))
	}
	if ago := TimeAgo(item.LastAccessTime, rl.now); ago != "" {
		meta = append(meta, rl.styles.Meta.Render(ago))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, rl.styles.Meta.Render(" · ")))
	}

	row := strings.Join(lines, "\n")
	if active {
		return rl.styles.ActiveRow.Render(row)
	}
	return rl.styles.Row.Render(row)
}

func (rl *ResultList) highlight(text string, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range palette.Highlight(text, rl.state.Query) {
		if seg.Match {
			b.WriteString(rl.styles.Match.Inherit(base).Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	return b.String()
}

// TimeAgo renders a unix timestamp relative to now. Zero renders nothing.
func TimeAgo(unix int64, now time.Time) string {
	if unix == 0 {
		return ""
	}
	t := time.Unix(unix, 0)
	if now.Sub(t) < time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// truncateLeft keeps the end of s, which carries the most specific part of
// a path.
func truncateLeft(s string, width int) string {
	if width < 2 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[1:]
	}
	return "…" + string(r)
}
