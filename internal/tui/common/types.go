package common

import (
	"time"

	"rayline/internal/palette"
	"rayline/internal/tui/styles"
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	State() palette.State
	InputView() string
	StatusView() string
	HelpView() string
	Styles() styles.Styles
	Width() int
	MaxRows() int
	Now() time.Time
}
