package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/navdemo/internal/model"
)

// RecordsModel is the record selection screen shown once logged in
type RecordsModel struct {
	List    list.Model
	ShowIDs bool
	keys    keyMap
}

// NewRecordsModel creates an empty record selection screen
func NewRecordsModel(showIDs bool) RecordsModel {
	return RecordsModel{
		List:    newRowList(),
		ShowIDs: showIDs,
		keys:    defaultKeyMap(),
	}
}

// SetRecords replaces the listed records
func (m *RecordsModel) SetRecords(records []*model.Record) {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r, showIDs: m.ShowIDs}
	}
	setItems(&m.List, items)
}

// SetSize resizes the list
func (m *RecordsModel) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

// Selected returns the record under the cursor
func (m RecordsModel) Selected() (*model.Record, bool) {
	it, ok := m.List.SelectedItem().(recordItem)
	if !ok {
		return nil, false
	}
	return it.record, true
}

// Init implements tea.Model
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Open):
			if r, ok := m.Selected(); ok {
				return m, send(openRecordMsg{recordID: r.ID()})
			}
			return m, nil
		case key.Matches(msg, m.keys.Fetch):
			return m, send(fetchRequestMsg{})
		case key.Matches(msg, m.keys.Logout):
			return m, send(logoutRequestMsg{})
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m RecordsModel) View() string {
	if len(m.List.Items()) == 0 {
		return RenderTitle("Record selection") + "\n" + RenderSubtitle("No records. Press f to fetch.")
	}
	return RenderTitle("Record selection") + "\n" + m.List.View()
}
