package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/navdemo/internal/model"
)

// RecordModel shows the details of one record and edits its name inline
type RecordModel struct {
	RecordID model.ID
	Name     string
	List     list.Model
	ShowIDs  bool

	// Inline rename state
	Renaming bool
	Input    textinput.Model

	keys keyMap
}

// NewRecordModel creates the screen for record
func NewRecordModel(record *model.Record, showIDs bool) RecordModel {
	input := textinput.New()
	input.Placeholder = "Record name"
	input.CharLimit = 64
	input.Width = 40
	input.PromptStyle = FocusedInputStyle

	m := RecordModel{
		RecordID: record.ID(),
		List:     newRowList(),
		ShowIDs:  showIDs,
		Input:    input,
		keys:     defaultKeyMap(),
	}
	m.SetRecord(record)
	return m
}

// SetRecord refreshes the screen from a newer copy of the record
func (m *RecordModel) SetRecord(record *model.Record) {
	m.Name = record.Name
	details := record.Details()
	items := make([]list.Item, len(details))
	for i, d := range details {
		items[i] = detailItem{detail: d, showIDs: m.ShowIDs}
	}
	setItems(&m.List, items)
}

// SetSize resizes the list
func (m *RecordModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Selected returns the detail under the cursor
func (m RecordModel) Selected() (model.Detail, bool) {
	it, ok := m.List.SelectedItem().(detailItem)
	if !ok {
		return model.Detail{}, false
	}
	return it.detail, true
}

// Init implements tea.Model
func (m RecordModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m RecordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.Renaming {
		return m.updateRename(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Open):
			if d, ok := m.Selected(); ok {
				return m, send(openDetailMsg{recordID: m.RecordID, detailID: d.ID()})
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			return m, send(addDetailRequestMsg{recordID: m.RecordID})
		case key.Matches(msg, m.keys.Rename):
			m.Renaming = true
			m.Input.SetValue(m.Name)
			m.Input.CursorEnd()
			cmd := m.Input.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// updateRename handles input while the name editor is open
func (m RecordModel) updateRename(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			name := strings.TrimSpace(m.Input.Value())
			if name == "" {
				return m, nil
			}
			m.stopRenaming()
			if name == m.Name {
				return m, nil
			}
			return m, send(renameRequestMsg{recordID: m.RecordID, name: name})
		case key.Matches(msg, m.keys.Cancel):
			m.stopRenaming()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m *RecordModel) stopRenaming() {
	m.Renaming = false
	m.Input.Blur()
}

// Title returns the screen title
func (m RecordModel) Title() string {
	return "Record view for " + m.Name
}

// View implements tea.Model
func (m RecordModel) View() string {
	var b strings.Builder
	b.WriteString(RenderTitle(m.Title()))
	b.WriteString("\n")

	if m.Renaming {
		b.WriteString(RenderField("New name", ""))
		b.WriteString("\n")
		b.WriteString(m.Input.View())
		b.WriteString("\n\n")
	}

	if len(m.List.Items()) == 0 {
		b.WriteString(RenderSubtitle("No details. Press a to add one."))
	} else {
		b.WriteString(m.List.View())
	}
	return b.String()
}
