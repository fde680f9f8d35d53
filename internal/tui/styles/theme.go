package styles

// Colors holds the ANSI 256 color codes of a theme.
type Colors struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Info     string
	Emphasis string
	Border   string
}

// DefaultColors matches the "default" configuration theme.
func DefaultColors() Colors {
	return Colors{
		Primary:  "213",
		Success:  "114",
		Warning:  "220",
		Error:    "196",
		Info:     "244",
		Emphasis: "212",
		Border:   "213",
	}
}

// Theme is the style set used when no configuration is supplied.
var Theme = New(DefaultColors())
