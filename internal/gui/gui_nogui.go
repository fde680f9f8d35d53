//go:build nogui
// +build nogui

package gui

import (
	"time"

	"rayline/internal/bridge"
	"rayline/internal/errors"
	"rayline/internal/palette"
)

// Option configures a Window.
type Option func(*Window)

// WithStartupDelay is accepted for API parity and ignored.
func WithStartupDelay(time.Duration) Option { return func(*Window) {} }

// WithScheduler is accepted for API parity and ignored.
func WithScheduler(palette.Scheduler) Option { return func(*Window) {} }

// WithClock is accepted for API parity and ignored.
func WithClock(func() time.Time) Option { return func(*Window) {} }

// Window is a placeholder for builds without a desktop toolkit.
type Window struct{}

// Bridge returns nil; nothing is ever attached in nogui builds.
func (w *Window) Bridge() *bridge.Bridge { return nil }

// Hide does nothing.
func (w *Window) Hide() {}

// ReportError does nothing.
func (w *Window) ReportError(error) {}

// Run is a stub implementation for builds with GUI disabled
func Run(func(w *Window) func(), ...Option) error {
	return errors.New("GUI not available in this build, use the terminal palette")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
