package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTree creates files under root. Keys are slash-separated relative
// paths; a key ending in "/" creates a directory instead of a file.
func CreateTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTestFilesWithDefault creates a small mixed tree of documents,
// applications and shortcuts.
func CreateTestFilesWithDefault(t *testing.T, dir string) {
	t.Helper()
	CreateTree(t, dir, map[string]string{
		"notes.txt":              "test content 1",
		"report.pdf":             "test content 2",
		"photo.jpg":              "image content",
		"tools/editor.exe":       "binary",
		"tools/launch.lnk":       "shortcut",
		"projects/app/main.go":   "package main",
		"projects/app/.git/":     "",
		"projects/node_modules/": "",
		"scratch.tmp":            "temp",
		"debug.log":              "log",
	})
}

// Touch sets the modification time of path.
func Touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
