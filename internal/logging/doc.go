// Package logging provides structured logging for navdemo.
//
// This package wraps a package-level zap logger with convenience functions
// for the events the demo cares about: simulated operations, client state
// notifications and navigation in the browser.
//
// # Silent by Default
//
// Logging is disabled unless a level is configured, either through
// Initialize or the NAVDEMO_LOG_LEVEL environment variable. The interactive
// browser draws over the whole terminal, so when it runs the log should be
// sent to a file:
//
//	NAVDEMO_LOG_LEVEL=debug NAVDEMO_LOG_FILE=/tmp/navdemo.log navdemo
//
// # Usage
//
//	if err := logging.Initialize(logging.Options{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.LogOperation("login", "authenticated")
//
// # Log Levels
//
//   - Debug: every state notification and navigation step
//   - Info: operation milestones (authenticated, records replaced)
//   - Warn: operations that ended after the client was closed
//   - Error: failures surfaced to the user, such as a cancelled login
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Initialize and SetLogger
// are meant to be called once, before any goroutine logs.
package logging
