// Navdemo is a navigation demo backed by a stub remote-data client.
//
// The client simulates logging in to a remote service and downloading a
// small set of records, each with a few details. Every operation waits a
// configurable latency and can be cancelled while it waits.
//
// Usage:
//
//	navdemo [command] [flags]
//
// Running without arguments launches the interactive browser.
// See 'navdemo --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/navdemo/internal/config"
	"github.com/muurk/navdemo/internal/logging"
	"github.com/muurk/navdemo/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// skipConfigAnnotation marks commands that must work with a broken or
// missing config file.
const skipConfigAnnotation = "navdemo/skip-config"

// Global flags and the effective configuration
var (
	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "navdemo",
	Short: "Navigation demo with a simulated remote-data client",
	Long: `A small record browser backed by a stub client.

Login waits the configured latency, then fetches four placeholder records
with one to four details each. Nothing is sent over the network and nothing
about the records is persisted.

If no command is specified, the interactive browser will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runBrowse,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	d := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/navdemo/config.yaml)")
	flags.Duration("latency", d.Latency, "Simulated latency of each operation")
	flags.String("log-level", d.Log.Level, "Log level (debug, info, warn, error); empty disables logging")
	flags.String("log-file", d.Log.File, "Write logs to this file instead of stderr")
	flags.Bool("alt-screen", d.UI.AltScreen, "Run the browser full-screen")
	flags.Bool("show-ids", d.UI.ShowIDs, "Show short record and detail ids")

	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration and initializes logging for every command.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfigAnnotation] != "true" {
		loaded, err := config.Load(config.LoadOptions{Path: configPath, Flags: cmd.Flags()})
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := logging.Initialize(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
		return err
	}
	logging.Debug("configuration loaded")
	return nil
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "navdemo %s\n", version.Full())
	},
}
