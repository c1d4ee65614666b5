package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/navdemo/internal/client"
	"github.com/muurk/navdemo/internal/logging"
	"github.com/muurk/navdemo/internal/tui"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

// browseCmd launches the interactive browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse records interactively",
	Long: `Launch the interactive record browser.

Press enter to log in. Once the records arrive, select a record to see its
details and a detail to see its values. esc goes back, f refetches, L logs
out and q quits.`,
	Example: `  # Default latency
  navdemo browse

  # Snappier demo, logging to a file
  navdemo browse --latency 300ms --log-level debug --log-file /tmp/navdemo.log`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	c := client.New(client.WithLatency(cfg.Latency))
	defer c.Close()

	if cfg.Log.Level != "" && cfg.Log.File == "" {
		logging.Warn("logging to stderr while the browser owns the terminal; use --log-file")
	}

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	app := tui.NewAppModel(c, tui.Options{ShowIDs: cfg.UI.ShowIDs})
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
