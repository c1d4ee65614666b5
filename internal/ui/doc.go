// Package ui renders the non-interactive output of the navdemo CLI.
//
// Unlike the interactive browser in internal/tui, these components follow a
// "print and move on" pattern: a command prints a header, reports steps as
// they happen and finishes with a result box.
//
// # Components
//
//   - Header: command banner with title, command line and parameters
//   - Progress: step list with status markers and a progress bar
//   - Result: success, failure or warning box with ordered details
//   - EventLog: the client notifications observed during a run (--verbose)
//   - RecordTree: the fetched records and their details
//
// # Runner
//
// Runner ties the components together for one long operation:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Login",
//	    Command:   "navdemo demo",
//	    StepNames: []string{"Sign in", "Fetch data sets"},
//	})
//
//	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Param, error) {
//	    onStep(1, "", ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, "", ui.StepComplete, "2s")
//	    return nil, nil
//	})
//
// # Logging Integration
//
// Logging is silent unless NAVDEMO_LOG_LEVEL is set, so the curated output
// here is not interleaved with log lines.
package ui
