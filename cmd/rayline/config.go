package main

import (
	"fmt"
	"os"

	"rayline/internal/config"
	"rayline/internal/errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(a.configInitCmd(), a.configShowCmd(), a.configThemesCmd())
	return cmd
}

// configPath is the explicit --config path or the default location.
func (a *app) configPath() (string, error) {
	if a.opts.configPath != "" {
		return config.ExpandPath(a.opts.configPath), nil
	}
	return config.DefaultPath()
}

func (a *app) configInitCmd() *cobra.Command {
	var (
		force bool
		theme string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewFileError("config file already exists (use --force to overwrite)", path, errors.InvalidPath, nil)
			}

			cfg := config.New()
			if theme != "" {
				cfg.ApplyTheme(theme)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg, path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme to start from (see 'rayline config themes')")
	return cmd
}

func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return errors.Wrap(err, "failed to marshal config")
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func (a *app) configThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListThemes() {
				marker := " "
				if name == a.cfg.Theme.Name {
					marker = "*"
				}
				t := config.GetTheme(name)
				fmt.Printf("%s %-11s primary=%s success=%s border=%s\n", marker, name, t["primary"], t["success"], t["border"])
			}
		},
	}
}
