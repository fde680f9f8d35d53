package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rayline/internal/config"
	"rayline/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
index:
  roots: ["/srv/docs", "~/Projects"]
  exclude_files: ["*.bak"]
  batch_size: 20
  watch: false
palette:
  recent_limit: 25
search_cache:
  ttl_seconds: 5
logging:
  debug: true
  file: /tmp/rayline.log
`
	invalidSyntaxYAML = `
index:
  roots: ["/srv/docs"
  batch_size: nope
`
)

func TestDefaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, []string{"~/Desktop", "~/Documents", "~/Downloads"}, cfg.Index.Roots)
	assert.Equal(t, []string{"node_modules", ".git", "dist", "build"}, cfg.Index.ExcludeDirs)
	assert.Equal(t, []string{"*.tmp", "*.log"}, cfg.Index.ExcludeFiles)
	assert.Equal(t, 50, cfg.Index.BatchSize)
	assert.True(t, cfg.Index.Watch)
	assert.Equal(t, 60, cfg.Palette.RecentLimit)
	assert.Equal(t, 150*time.Millisecond, cfg.StartupDelay())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "213", cfg.Theme.Primary)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoadConfigFileMergesDefaults(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/docs", "~/Projects"}, cfg.Index.Roots)
	assert.Equal(t, []string{"*.bak"}, cfg.Index.ExcludeFiles)
	assert.Equal(t, []string{"node_modules", ".git", "dist", "build"}, cfg.Index.ExcludeDirs, "unset keys keep defaults")
	assert.Equal(t, 20, cfg.Index.BatchSize)
	assert.False(t, cfg.Index.Watch)
	assert.Equal(t, 25, cfg.Palette.RecentLimit)
	assert.Equal(t, 150, cfg.Palette.StartupDelayMS)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL())
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "/tmp/rayline.log", cfg.Logging.File)
}

func TestLoadConfigFileSyntaxError(t *testing.T) {
	_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestLoadConfigFileNamedTheme(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestYAML(t, `
theme:
  name: ocean
  border: "99"
`))
	require.NoError(t, err)
	assert.Equal(t, "ocean", cfg.Theme.Name)
	assert.Equal(t, config.GetTheme("ocean")["primary"], cfg.Theme.Primary)
	assert.Equal(t, "99", cfg.Theme.Border)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		param  string
	}{
		{"no roots", func(c *config.Config) { c.Index.Roots = nil }, "index.roots"},
		{"blank root", func(c *config.Config) { c.Index.Roots = []string{"/a", " "} }, "index.roots[1]"},
		{"nested exclude dir", func(c *config.Config) { c.Index.ExcludeDirs = []string{"a/b"} }, "index.exclude_dirs[0]"},
		{"bad glob", func(c *config.Config) { c.Index.ExcludeFiles = []string{"*.log", "[a-"} }, "index.exclude_files[1]"},
		{"batch size", func(c *config.Config) { c.Index.BatchSize = 0 }, "index.batch_size"},
		{"recent limit", func(c *config.Config) { c.Palette.RecentLimit = 0 }, "palette.recent_limit"},
		{"startup delay", func(c *config.Config) { c.Palette.StartupDelayMS = -1 }, "palette.startup_delay_ms"},
		{"cache ttl", func(c *config.Config) { c.SearchCache.TTLSeconds = -5 }, "search_cache.ttl_seconds"},
		{"theme", func(c *config.Config) { c.Theme.Name = "neon" }, "theme.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err))

			var cfgErr *errors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.Param())
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Index.Roots = []string{"/data"}
	cfg.ApplyTheme("sunset")

	require.NoError(t, config.SaveConfig(cfg, path))
	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, config.ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "Desktop"), config.ExpandPath("~/Desktop"))
	assert.Equal(t, "/abs/path", config.ExpandPath("/abs/path"))
	assert.Equal(t, "~user/x", config.ExpandPath("~user/x"))

	cfg := config.New()
	cfg.Index.Roots = []string{"~/Documents", "/srv"}
	assert.Equal(t, []string{filepath.Join(home, "Documents"), "/srv"}, cfg.ExpandedRoots())
}

func TestThemes(t *testing.T) {
	assert.Len(t, config.ListThemes(), 6)
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.Len(t, theme, 7, name)
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("missing"))
}
