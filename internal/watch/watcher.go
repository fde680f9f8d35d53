// Package watch keeps a set of directory trees under fsnotify and reports
// created, modified and removed paths.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"rayline/internal/errors"
	"rayline/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change seen for a path.
type Op int

const (
	Created Op = iota + 1
	Modified
	Removed
)

func (o Op) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// FileModification represents a change detected by the watcher. Info is nil
// for removals.
type FileModification struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
	Op        Op
}

// Filter reports whether a path should be ignored.
type Filter func(path string, isDir bool) bool

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter skips matching paths. Skipped directories are never watched.
func WithFilter(f Filter) Option {
	return func(w *Watcher) { w.skip = f }
}

// WithBuffer sets the event channel capacity.
func WithBuffer(n int) Option {
	return func(w *Watcher) { w.buffer = n }
}

// Watcher monitors directory trees for file changes using fsnotify
type Watcher struct {
	// Directories being watched
	directories map[string]struct{}

	// Channel to receive file modifications
	fileModChan chan FileModification

	// Channel to signal stop
	stopChan chan struct{}

	// Closed when the event loop exits
	done chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	skip   Filter
	buffer int

	mutex    sync.RWMutex
	running  bool
	stopped  bool
	stopOnce sync.Once
}

// New creates a new directory watcher using fsnotify
func New(opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		directories: make(map[string]struct{}),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
		fsWatcher:   fsWatcher,
		skip:        func(string, bool) bool { return false },
		buffer:      256,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.fileModChan = make(chan FileModification, w.buffer)
	return w, nil
}

// AddDirectory watches a single directory.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return errors.NewFileError("directory not found", dir, errors.FileNotFound, err)
	case os.IsPermission(err):
		return errors.NewFileError("directory not readable", dir, errors.FileAccessDenied, err)
	case err != nil:
		return errors.Wrapf(err, "error accessing directory %s", dir)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if _, ok := w.directories[dir]; ok {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}
	w.directories[dir] = struct{}{}
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// AddTree watches root and every directory beneath it that the filter
// accepts. Unreadable subdirectories are skipped.
func (w *Watcher) AddTree(root string) error {
	if err := w.AddDirectory(root); err != nil {
		return err
	}
	w.walkTree(root, nil)
	return nil
}

// walkTree adds watches below root and hands every accepted entry to visit.
func (w *Watcher) walkTree(root string, visit func(path string, d fs.DirEntry)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return nil
		}
		if w.skip(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := w.AddDirectory(path); err != nil {
				log.LogWithFields(log.F("directory", path), log.F("error", err)).Warn("Failed to watch directory")
				return filepath.SkipDir
			}
		}
		if visit != nil {
			visit(path, d)
		}
		return nil
	})
}

// FileChannel returns the channel that delivers file modification events.
// It is closed by Stop.
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins the file watching process using fsnotify
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	if w.stopped {
		w.mutex.Unlock()
		return errors.New("watcher stopped")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	log.Debug("Watcher started.")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// Renames report the old name; the new name arrives as a Create
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.forget(event.Name)
		w.send(FileModification{Path: event.Name, Timestamp: time.Now(), Op: Removed})
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// The file may already be gone again
		if !os.IsNotExist(err) {
			log.LogWithFields(log.F("file", event.Name), log.F("error", err)).Error("Error stating file")
		}
		return
	}
	if w.skip(event.Name, info.IsDir()) {
		return
	}

	op := Modified
	if event.Op.Has(fsnotify.Create) {
		op = Created
	}
	if info.IsDir() {
		if op != Created {
			return
		}
		if err := w.AddDirectory(event.Name); err != nil {
			log.LogWithFields(log.F("directory", event.Name), log.F("error", err)).Warn("Failed to watch new directory")
		}
	}
	w.send(FileModification{Path: event.Name, Info: info, Timestamp: time.Now(), Op: op})

	// Contents moved or copied in with a new directory produce no events of their own
	if info.IsDir() {
		w.walkTree(event.Name, func(path string, d fs.DirEntry) {
			if fi, err := d.Info(); err == nil {
				w.send(FileModification{Path: path, Info: fi, Timestamp: time.Now(), Op: Created})
			}
		})
	}
}

func (w *Watcher) forget(path string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	prefix := path + string(filepath.Separator)
	for dir := range w.directories {
		if dir == path || strings.HasPrefix(dir, prefix) {
			delete(w.directories, dir)
		}
	}
}

// send drops the event when the channel is full.
func (w *Watcher) send(mod FileModification) {
	select {
	case w.fileModChan <- mod:
	case <-w.stopChan:
	default:
		log.LogWithFields(log.F("file", mod.Path)).Warn("Event channel is full, dropped event")
	}
}

// Stop halts the file watching process and closes the event channel. It
// is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mutex.Lock()
		started := w.running
		w.running = false
		w.stopped = true
		close(w.stopChan)
		w.mutex.Unlock()

		if err := w.fsWatcher.Close(); err != nil {
			log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
		}
		if started {
			<-w.done
		}
		close(w.fileModChan)
		log.Debug("Watcher stopped.")
	})
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, 0, len(w.directories))
	for dir := range w.directories {
		dirs = append(dirs, dir)
	}
	return dirs
}
