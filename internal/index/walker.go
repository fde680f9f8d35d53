package index

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"rayline/internal/errors"
	"rayline/internal/log"

	"github.com/gobwas/glob"
)

// Entry is a single path found by a Walker.
type Entry struct {
	Path    string
	ModTime time.Time
	IsDir   bool
}

// Walker crawls a fixed set of roots, skipping excluded directory names and
// file name globs. Unreadable entries are ignored.
type Walker struct {
	roots        []string
	excludeDirs  map[string]struct{}
	excludeFiles []glob.Glob
}

// NewWalker compiles the exclude patterns. Directory names and file globs are
// matched case-insensitively against the base name.
func NewWalker(roots, excludeDirs, excludeFiles []string) (*Walker, error) {
	w := &Walker{
		roots:       append([]string(nil), roots...),
		excludeDirs: make(map[string]struct{}, len(excludeDirs)),
	}
	for _, d := range excludeDirs {
		w.excludeDirs[strings.ToLower(d)] = struct{}{}
	}
	for _, pattern := range excludeFiles {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, errors.NewConfigError("invalid exclude pattern", pattern, errors.InvalidConfig, err)
		}
		w.excludeFiles = append(w.excludeFiles, g)
	}
	return w, nil
}

// Roots returns the directories the walker crawls.
func (w *Walker) Roots() []string {
	return append([]string(nil), w.roots...)
}

// Skip reports whether path is excluded from the index.
func (w *Walker) Skip(path string, isDir bool) bool {
	name := strings.ToLower(filepath.Base(path))
	if isDir {
		_, ok := w.excludeDirs[name]
		return ok
	}
	for _, g := range w.excludeFiles {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Walk visits every indexable entry under the roots once, in lexical order per
// root. It stops early when ctx is done or fn returns an error.
func (w *Walker) Walk(ctx context.Context, fn func(Entry) error) error {
	seen := make(map[string]struct{}, 4096)

	for _, root := range w.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("skipping unreadable entry")
				return nil
			}
			if _, ok := seen[path]; ok {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			seen[path] = struct{}{}

			if w.Skip(path, d.IsDir()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			return fn(Entry{Path: path, ModTime: info.ModTime(), IsDir: d.IsDir()})
		})
		if err != nil {
			return err
		}
	}
	return nil
}
