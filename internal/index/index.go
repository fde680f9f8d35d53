// Package index crawls the configured roots into an in-memory file and
// folder index and serves recency and substring queries over it. Engine
// adapts an Index to the palette bridge.
package index

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"rayline/internal/log"
	"rayline/internal/palette"
	"rayline/pkg/types"
)

// DefaultBatchSize is the number of results per progressive batch.
const DefaultBatchSize = 50

type entry struct {
	path    string
	lower   string
	modTime int64
	isDir   bool
}

func newEntry(path string, modTime time.Time, isDir bool) entry {
	return entry{
		path:    path,
		lower:   palette.Fold(path),
		modTime: modTime.Unix(),
		isDir:   isDir,
	}
}

// matches checks the base name first since it is the common hit.
func (e entry) matches(q string) bool {
	return strings.Contains(palette.Fold(filepath.Base(e.path)), q) || strings.Contains(e.lower, q)
}

func (e entry) result() types.FileResult {
	return newResult(e.path, time.Unix(e.modTime, 0), kindFor(e.path, e.isDir))
}

// Index holds the folder and file entries found by the last build. It is
// safe for concurrent use.
type Index struct {
	walker *Walker

	mu      sync.RWMutex
	folders []entry
	files   []entry
	// pos locates every entry by path.
	pos map[string]slot
}

type slot struct {
	dir bool
	i   int
}

// New creates an empty index over the walker's roots.
func New(w *Walker) *Index {
	return &Index{walker: w}
}

// Walker returns the walker used for builds.
func (ix *Index) Walker() *Walker {
	return ix.walker
}

// Len returns the number of indexed files and folders.
func (ix *Index) Len() (files, folders int) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.files), len(ix.folders)
}

// Build crawls every root and replaces the index contents. A cancelled build
// leaves the previous contents in place.
func (ix *Index) Build(ctx context.Context) error {
	return ix.BuildProgressive(ctx, 0, nil)
}

// BuildProgressive crawls like Build and passes results to emit in batches of
// batchSize as they are found, ending with a final partial batch. The index is
// swapped once the crawl completes.
func (ix *Index) BuildProgressive(ctx context.Context, batchSize int, emit func([]types.FileResult)) error {
	start := time.Now()
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	var folders, files []entry
	var batch []types.FileResult

	err := ix.walker.Walk(ctx, func(en Entry) error {
		e := newEntry(en.Path, en.ModTime, en.IsDir)
		if e.isDir {
			folders = append(folders, e)
		} else {
			files = append(files, e)
		}

		if emit == nil {
			return nil
		}
		batch = append(batch, e.result())
		if len(batch) >= batchSize {
			emit(batch)
			batch = make([]types.FileResult, 0, batchSize)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if emit != nil && len(batch) > 0 {
		emit(batch)
	}

	ix.mu.Lock()
	ix.folders = folders
	ix.files = files
	ix.reindex()
	ix.mu.Unlock()

	log.LogWithFields(
		log.F("files", len(files)),
		log.F("folders", len(folders)),
		log.F("duration", time.Since(start).String()),
	).Info("index built")
	return nil
}

// Recent returns up to limit files and folders, most recently modified
// first.
func (ix *Index) Recent(limit int) []types.FileResult {
	ix.mu.RLock()
	all := make([]entry, 0, len(ix.files)+len(ix.folders))
	all = append(all, ix.files...)
	all = append(all, ix.folders...)
	ix.mu.RUnlock()

	if len(all) == 0 || limit <= 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].modTime > all[j].modTime
	})

	n := min(limit, len(all))
	results := make([]types.FileResult, 0, n)
	for _, e := range all[:n] {
		results = append(results, e.result())
	}
	return results
}

// Search returns up to limit entries whose base name or path contains the
// trimmed, case-folded query. Files come before folders. An empty query
// returns Recent(limit).
func (ix *Index) Search(query string, limit int) []types.FileResult {
	q := palette.Fold(strings.TrimSpace(query))
	if q == "" {
		return ix.Recent(limit)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var hits []types.FileResult
	for _, list := range [][]entry{ix.files, ix.folders} {
		for _, e := range list {
			if len(hits) >= limit {
				return hits
			}
			if e.matches(q) {
				hits = append(hits, e.result())
			}
		}
	}
	return hits
}

// Add inserts or refreshes path. It reports whether the path was new.
func (ix *Index) Add(path string, info fs.FileInfo) (types.FileResult, bool) {
	e := newEntry(path, info.ModTime(), info.IsDir())

	ix.mu.Lock()
	defer ix.mu.Unlock()

	known := false
	if s, ok := ix.pos[path]; ok {
		if s.dir == e.isDir {
			(*ix.list(s.dir))[s.i] = e
			return e.result(), false
		}
		// Replaced by an entry of the other type
		ix.deleteLocked(func(x entry) bool { return x.path == path })
		known = true
	}

	list := ix.list(e.isDir)
	*list = append(*list, e)
	if ix.pos == nil {
		ix.pos = make(map[string]slot)
	}
	ix.pos[path] = slot{dir: e.isDir, i: len(*list) - 1}
	return e.result(), !known
}

// Remove drops path and, for a folder, everything beneath it. It reports
// whether anything was removed.
func (ix *Index) Remove(path string) bool {
	prefix := path + string(filepath.Separator)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	return ix.deleteLocked(func(e entry) bool {
		return e.path == path || strings.HasPrefix(e.path, prefix)
	})
}

func (ix *Index) deleteLocked(gone func(entry) bool) bool {
	before := len(ix.files) + len(ix.folders)
	ix.files = slices.DeleteFunc(ix.files, gone)
	ix.folders = slices.DeleteFunc(ix.folders, gone)
	if len(ix.files)+len(ix.folders) == before {
		return false
	}
	ix.reindex()
	return true
}

func (ix *Index) list(dir bool) *[]entry {
	if dir {
		return &ix.folders
	}
	return &ix.files
}

func (ix *Index) reindex() {
	ix.pos = make(map[string]slot, len(ix.files)+len(ix.folders))
	for i, e := range ix.files {
		ix.pos[e.path] = slot{i: i}
	}
	for i, e := range ix.folders {
		ix.pos[e.path] = slot{dir: true, i: i}
	}
}

// ToResult converts a path and its modification time into a result. The
// kind is taken from the file system when the path exists.
func ToResult(path string, modTime time.Time) types.FileResult {
	return newResult(path, modTime, KindFromPath(path))
}

func newResult(path string, modTime time.Time, kind types.Kind) types.FileResult {
	var lastAccess int64
	if !modTime.IsZero() {
		lastAccess = modTime.Unix()
	}
	return types.FileResult{
		ID:             path,
		Name:           filepath.Base(path),
		Path:           path,
		Kind:           kind,
		MetaLeft:       filepath.Dir(path),
		LastAccessTime: lastAccess,
	}
}

// KindFromPath classifies path, consulting the file system to tell folders
// apart.
func KindFromPath(path string) types.Kind {
	info, err := os.Stat(path)
	return kindFor(path, err == nil && info.IsDir())
}

func kindFor(path string, isDir bool) types.Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if isDir {
		if ext == ".app" {
			return types.KindApp
		}
		return types.KindFolder
	}
	switch ext {
	case ".exe", ".app", ".appimage":
		return types.KindApp
	case ".lnk", ".desktop", ".url":
		return types.KindShortcut
	}
	return types.KindFile
}
