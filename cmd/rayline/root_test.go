package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rayline/internal/config"
	"rayline/internal/errors"
	"rayline/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	logFile := filepath.Join(t.TempDir(), "rayline.log")

	require.NoError(t, run(t, "--config", path, "--log-file", logFile, "config", "init", "--theme", "ocean"))
	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ocean", cfg.Theme.Name)
	assert.Equal(t, "31", cfg.Theme.Primary)

	err = run(t, "--config", path, "--log-file", logFile, "config", "init")
	require.Error(t, err)
	var fileErr *errors.FileError
	assert.True(t, errors.As(err, &fileErr))

	require.NoError(t, run(t, "--config", path, "--log-file", logFile, "config", "init", "--force"))
	cfg, err = config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Theme.Name)
}

func TestConfigInitRejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := run(t, "--config", path, "--log-file", filepath.Join(t.TempDir(), "log"), "config", "init", "--theme", "neon")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.NoFileExists(t, path)
}

func TestBrokenExplicitConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("index: [unclosed"), 0644))

	err := run(t, "--config", path, "config", "themes")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestSearchUsesEngine(t *testing.T) {
	root := t.TempDir()
	testutils.CreateTestFilesWithDefault(t, root)

	cfg := config.New()
	cfg.Index.Roots = []string{root}
	a := &app{cfg: cfg}

	results, err := a.search(context.Background(), "  TOOLS ")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, filepath.Join(root, "tools", "editor.exe"), results[0].Path)

	results, err = a.search(context.Background(), "scratch")
	require.NoError(t, err)
	assert.Empty(t, results, "excluded files are not indexed")
}

func TestLogFileForScreenCommands(t *testing.T) {
	a := &app{cfg: config.New()}
	a.opts.logFile = filepath.Join(t.TempDir(), "logs", "out.log")
	a.configureLogging(true)
	t.Cleanup(func() { a.opts.logFile = ""; a.configureLogging(false) })

	assert.DirExists(t, filepath.Dir(a.opts.logFile))
}
