package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/navdemo/internal/config"
	"github.com/muurk/navdemo/internal/ui"
)

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file without asking")

	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configCmd groups the config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the optional configuration file",
	Long: `Manage the optional YAML configuration file.

Values are resolved from defaults, the file, NAVDEMO_* environment variables
and flags, in increasing order of precedence.`,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with default values",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Config init", cmd.CommandPath(), ui.Param{Key: "Path", Value: path})

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if !configForce && !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			"Config file exists",
			[]string{path + " will be replaced with default values"},
			"Overwrite it?") {
			p.PrintWarning("Config file left unchanged", ui.Param{Key: "Path", Value: path})
			return nil
		}
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("failed to check config file: %w", statErr)
	}

	written, err := config.Save(config.Default(), path)
	if err != nil {
		p.PrintError("Config file not written", err,
			"Check that the parent directory is writable",
			"Pass --config to choose another location")
		return err
	}

	p.PrintSuccess("Config file written", ui.Param{Key: "Path", Value: written})
	return nil
}

// resolveConfigPath returns --config or the default location
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
