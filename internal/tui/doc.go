// Package tui implements the interactive record browser of navdemo.
//
// The browser is a Bubble Tea program following the Elm architecture. It
// never mutates client state directly: operations run as tea.Cmd functions
// and every change the client publishes arrives as a message through
// client.Watch, so the view always renders the latest snapshot.
//
// # Screens
//
// The root screen follows the client state:
//   - Login: a single Login action and the last login error, if any
//   - Loading: spinner and a progress bar while any operation is in flight
//   - Record selection: the fetched records, once logged in
//
// Selecting a record pushes its record view; selecting a detail pushes the
// detail view. esc or backspace pops. Screens whose record disappears (a
// refetch replaces every record, logout clears them) are popped
// automatically.
//
// # Framework Components
//
//   - bubbles/list: record and detail lists
//   - bubbles/spinner, bubbles/progress: loading indicator
//   - bubbles/textinput: inline record rename
//   - bubbles/viewport: detail body
//   - bubbles/help, bubbles/key: per-screen key help
//   - lipgloss: styling and layout
//
// # Usage Example
//
//	c := client.New()
//	defer c.Close()
//
//	app := tui.NewAppModel(c, tui.Options{})
//	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
//	    return err
//	}
package tui
