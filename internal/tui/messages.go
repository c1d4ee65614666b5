package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/navdemo/internal/client"
	"github.com/muurk/navdemo/internal/model"
)

// Messages produced by client commands
type stateMsg struct {
	event client.Event
}

type watchClosedMsg struct{}

type loginDoneMsg struct {
	err error
}

type fetchDoneMsg struct {
	err error
}

// Messages produced by screens and handled by AppModel
type openRecordMsg struct {
	recordID model.ID
}

type openDetailMsg struct {
	recordID model.ID
	detailID model.ID
}

type goBackMsg struct{}

type fetchRequestMsg struct{}

type logoutRequestMsg struct{}

type addDetailRequestMsg struct {
	recordID model.ID
}

type renameRequestMsg struct {
	recordID model.ID
	name     string
}

// send wraps msg in a command
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
