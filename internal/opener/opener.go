// Package opener hands a path to the platform's default handler.
package opener

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"rayline/internal/errors"
	"rayline/internal/log"
)

// Runner starts a command without waiting for it to finish.
type Runner func(ctx context.Context, name string, args ...string) error

// Opener launches files, folders and applications.
type Opener struct {
	goos string
	run  Runner
}

// Option configures an Opener.
type Option func(*Opener)

// WithRunner replaces the process launcher.
func WithRunner(r Runner) Option {
	return func(o *Opener) { o.run = r }
}

// WithOS overrides runtime.GOOS when choosing the launch command.
func WithOS(goos string) Option {
	return func(o *Opener) { o.goos = goos }
}

// New returns an opener for the current platform.
func New(opts ...Option) *Opener {
	o := &Opener{goos: runtime.GOOS, run: startProcess}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Command returns the program and arguments used to open path.
func (o *Opener) Command(path string) (string, []string) {
	switch o.goos {
	case "windows":
		// The empty argument is the window title start expects first
		return "cmd", []string{"/c", "start", "", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open launches path with its default handler. kind is recorded on failure
// only.
func (o *Opener) Open(ctx context.Context, path, kind string) error {
	if path == "" {
		return errors.NewOpenError(path, kind, errors.ErrInvalidPath)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewOpenError(path, kind, errors.ErrFileNotFound)
		}
		return errors.NewOpenError(path, kind, err)
	}

	name, args := o.Command(path)
	if err := o.run(ctx, name, args...); err != nil {
		return errors.NewOpenError(path, kind, err)
	}
	log.LogWithFields(log.F("path", path), log.F("kind", kind), log.F("command", name)).Info("opened")
	return nil
}

// startProcess detaches the handler; the reaper goroutine avoids zombies.
func startProcess(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Not CommandContext: the handler outlives the palette
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.LogWithFields(log.F("command", name), log.F("error", err)).Debug("open handler exited with error")
		}
	}()
	return nil
}
