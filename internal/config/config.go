package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rayline/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
type Config struct {
	Index struct {
		Roots        []string `yaml:"roots"`         // Directories crawled for results
		ExcludeDirs  []string `yaml:"exclude_dirs"`  // Directory names never descended into
		ExcludeFiles []string `yaml:"exclude_files"` // Glob patterns for skipped file names
		BatchSize    int      `yaml:"batch_size"`    // Results per progressive batch
		Watch        bool     `yaml:"watch"`         // Keep the index live with fsnotify
	} `yaml:"index"`
	Palette struct {
		RecentLimit    int `yaml:"recent_limit"`     // Results shown before any query
		StartupDelayMS int `yaml:"startup_delay_ms"` // Delay before indexing is requested
	} `yaml:"palette"`
	SearchCache struct {
		TTLSeconds int `yaml:"ttl_seconds"` // 0 disables caching
	} `yaml:"search_cache"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Search pill and selection
		Success  string `yaml:"success"`  // Match highlight
		Warning  string `yaml:"warning"`  // Indexing indicator
		Error    string `yaml:"error"`    // Error messages
		Info     string `yaml:"info"`     // Secondary text
		Emphasis string `yaml:"emphasis"` // Kind badges
		Border   string `yaml:"border"`   // Frame border
	} `yaml:"theme"`
	Logging struct {
		Debug bool   `yaml:"debug"`
		JSON  bool   `yaml:"json"`
		File  string `yaml:"file"` // Empty keeps logs on stderr, or the default file for the TUI
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/rayline/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rayline", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewFileError("error reading config file", path, errors.FileAccessDenied, err)
	}

	// Decoding over the defaults leaves unset keys untouched
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	// A named theme supplies every color the file leaves out
	var raw struct {
		Theme map[string]string `yaml:"theme"`
	}
	if err := yaml.Unmarshal(data, &raw); err == nil && knownTheme(raw.Theme["name"]) {
		cfg.ApplyTheme(raw.Theme["name"])
		cfg.overrideColors(raw.Theme)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Index.Roots = []string{"~/Desktop", "~/Documents", "~/Downloads"}
	cfg.Index.ExcludeDirs = []string{"node_modules", ".git", "dist", "build"}
	cfg.Index.ExcludeFiles = []string{"*.tmp", "*.log"}
	cfg.Index.BatchSize = 50
	cfg.Index.Watch = true

	cfg.Palette.RecentLimit = 60
	cfg.Palette.StartupDelayMS = 150

	cfg.SearchCache.TTLSeconds = 30

	cfg.ApplyTheme("default")
	return cfg
}

// New returns a configuration populated with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewFileError("failed to create config directory", dir, errors.FileAccessDenied, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError("failed to write config file", path, errors.FileAccessDenied, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if len(c.Index.Roots) == 0 {
		return invalid("index.roots", "at least one root is required")
	}
	for i, root := range c.Index.Roots {
		if strings.TrimSpace(root) == "" {
			return invalid(fmt.Sprintf("index.roots[%d]", i), "root path cannot be empty")
		}
	}
	for i, dir := range c.Index.ExcludeDirs {
		if dir == "" || strings.ContainsRune(dir, filepath.Separator) {
			return invalid(fmt.Sprintf("index.exclude_dirs[%d]", i), "must be a bare directory name")
		}
	}
	for i, pattern := range c.Index.ExcludeFiles {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewConfigError("invalid glob pattern", fmt.Sprintf("index.exclude_files[%d]", i), errors.InvalidConfig, err)
		}
	}
	if c.Index.BatchSize < 1 {
		return invalid("index.batch_size", "must be >= 1")
	}
	if c.Palette.RecentLimit < 1 {
		return invalid("palette.recent_limit", "must be >= 1")
	}
	if c.Palette.StartupDelayMS < 0 {
		return invalid("palette.startup_delay_ms", "must be >= 0")
	}
	if c.SearchCache.TTLSeconds < 0 {
		return invalid("search_cache.ttl_seconds", "must be >= 0")
	}
	if c.Theme.Name != "" && !knownTheme(c.Theme.Name) {
		return invalid("theme.name", fmt.Sprintf("unknown theme %q", c.Theme.Name))
	}
	return nil
}

func invalid(param, msg string) error {
	return errors.NewConfigError(msg, param, errors.InvalidConfig, nil)
}

// StartupDelay returns the palette startup delay as a duration.
func (c *Config) StartupDelay() time.Duration {
	return time.Duration(c.Palette.StartupDelayMS) * time.Millisecond
}

// CacheTTL returns the search cache lifetime. Zero means caching is off.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.SearchCache.TTLSeconds) * time.Second
}

// ExpandedRoots returns the index roots with ~ resolved.
func (c *Config) ExpandedRoots() []string {
	out := make([]string, 0, len(c.Index.Roots))
	for _, root := range c.Index.Roots {
		out = append(out, ExpandPath(root))
	}
	return out
}

// ExpandPath replaces a leading ~ with the user's home directory. Paths it
// cannot expand are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

var themes = map[string]map[string]string{
	"default": {
		"primary":  "213", // Purple
		"success":  "114", // Green
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "244", // Grey
		"emphasis": "212", // Light Pink
		"border":   "213", // Purple
	},
	"dark": {
		"primary":  "105", // Dark Blue
		"success":  "78",  // Dark Green
		"warning":  "214", // Dark Yellow
		"error":    "160", // Dark Red
		"info":     "240", // Dark Grey
		"emphasis": "147", // Light Blue
		"border":   "105", // Dark Blue
	},
	"light": {
		"primary":  "135", // Light Purple
		"success":  "28",  // Green
		"warning":  "172", // Orange
		"error":    "160", // Red
		"info":     "243", // Grey
		"emphasis": "98",  // Purple
		"border":   "135", // Light Purple
	},
	"monochrome": {
		"primary":  "245", // Light Grey
		"success":  "255", // Bright White
		"warning":  "250", // Grey
		"error":    "252", // White
		"info":     "241", // Medium Grey
		"emphasis": "255", // Bright White
		"border":   "245", // Light Grey
	},
	"ocean": {
		"primary":  "31",  // Teal
		"success":  "51",  // Cyan
		"warning":  "220", // Yellow
		"error":    "196", // Red
		"info":     "67",  // Steel Blue
		"emphasis": "36",  // Green-Blue
		"border":   "31",  // Teal
	},
	"sunset": {
		"primary":  "208", // Orange
		"success":  "227", // Light Yellow
		"warning":  "214", // Dark Yellow
		"error":    "196", // Red
		"info":     "180", // Tan
		"emphasis": "203", // Pink-Orange
		"border":   "208", // Orange
	},
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

func knownTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

func (c *Config) overrideColors(colors map[string]string) {
	for key, dst := range map[string]*string{
		"primary":  &c.Theme.Primary,
		"success":  &c.Theme.Success,
		"warning":  &c.Theme.Warning,
		"error":    &c.Theme.Error,
		"info":     &c.Theme.Info,
		"emphasis": &c.Theme.Emphasis,
		"border":   &c.Theme.Border,
	} {
		if v := colors[key]; v != "" {
			*dst = v
		}
	}
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
