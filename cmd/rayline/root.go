package main

import (
	"os"
	"path/filepath"

	"rayline/internal/config"
	"rayline/internal/errors"
	"rayline/internal/log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// annotationScreen marks commands that own the terminal, so logs must go to a
// file.
const annotationScreen = "rayline/screen"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	debug      bool
	logFile    string
	jsonLogs   bool
}

func (o *globalOptions) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "config file (default is $HOME/.config/rayline/config.yaml)")
	fs.BoolVar(&o.debug, "debug", false, "enable debug logging")
	fs.StringVar(&o.logFile, "log-file", "", "append logs to this file")
	fs.BoolVar(&o.jsonLogs, "json-logs", false, "write logs as JSON lines")
	return fs
}

// app carries the loaded configuration to subcommands.
type app struct {
	opts globalOptions
	cfg  *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// terminal palette.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "rayline",
		Short:   "A keyboard-driven launcher for your files",
		Long:    `Rayline indexes your documents, downloads and apps, and opens them from a fast search palette.`,
		Version: version,
		Annotations: map[string]string{
			annotationScreen: "true",
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			a.configureLogging(cmd.Annotations[annotationScreen] == "true")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().AddFlagSet(a.opts.flagSet())

	rootCmd.AddCommand(a.tuiCmd())
	rootCmd.AddCommand(a.guiCmd())
	rootCmd.AddCommand(a.indexCmd())
	rootCmd.AddCommand(a.searchCmd())
	rootCmd.AddCommand(a.configCmd())

	return rootCmd
}

// loadConfig reads the explicit --config file, or the default location. A
// broken default file falls back to defaults with a warning; a broken
// explicit file is an error.
func (a *app) loadConfig(cmd *cobra.Command) error {
	if a.opts.configPath != "" {
		cfg, err := config.LoadConfigFile(config.ExpandPath(a.opts.configPath))
		if err != nil {
			return err
		}
		a.cfg = cfg
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		msg := "config file unreadable, using default settings"
		if errors.IsInvalidConfig(err) {
			msg = "config file invalid, using default settings"
		}
		log.LogWithError(err).Warn(msg)
		cfg = config.New()
	}
	a.cfg = cfg
	return nil
}

func (a *app) configureLogging(screen bool) {
	var opts []log.Option

	file := a.opts.logFile
	if file == "" {
		file = a.cfg.Logging.File
	}
	if file == "" && screen {
		file = defaultLogFile()
	}
	if file != "" {
		file = config.ExpandPath(file)
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			log.LogWithError(errors.NewFileError("cannot create log directory", filepath.Dir(file), errors.FileAccessDenied, err)).Warn("logging to stderr")
			file = ""
		}
	}

	if file != "" {
		opts = append(opts, log.WithFile(file))
	} else {
		opts = append(opts, log.WithOutput(os.Stderr))
	}
	if a.opts.jsonLogs || a.cfg.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	if a.opts.debug || a.cfg.Logging.Debug {
		opts = append(opts, log.WithLevel("debug"))
	}
	log.Configure(opts...)
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "rayline.log")
	}
	return filepath.Join(dir, "rayline", "rayline.log")
}
