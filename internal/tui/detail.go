package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/navdemo/internal/model"
)

// DetailModel shows one detail in a scrollable viewport
type DetailModel struct {
	RecordID model.ID
	Detail   model.Detail
	Viewport viewport.Model
	ShowIDs  bool
}

// NewDetailModel creates the screen for detail of the record recordID
func NewDetailModel(recordID model.ID, detail model.Detail, showIDs bool) DetailModel {
	m := DetailModel{
		RecordID: recordID,
		Viewport: viewport.New(DefaultWidth-6, defaultListHeight),
		ShowIDs:  showIDs,
	}
	m.SetDetail(detail)
	return m
}

// SetDetail refreshes the viewport from a newer copy of the detail
func (m *DetailModel) SetDetail(detail model.Detail) {
	m.Detail = detail

	lines := []string{
		RenderField("Count", fmt.Sprint(detail.Count)),
		RenderField("Description", detail.Description),
	}
	if m.ShowIDs {
		lines = append(lines, RenderField("ID", detail.ID().String()))
	}
	m.Viewport.SetContent(strings.Join(lines, "\n"))
}

// SetSize resizes the viewport
func (m *DetailModel) SetSize(width, height int) {
	m.Viewport.Width = width
	m.Viewport.Height = height
}

// Title returns the screen title
func (m DetailModel) Title() string {
	return "Detail for " + m.Detail.Description
}

// Init implements tea.Model
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m DetailModel) View() string {
	return RenderTitle(m.Title()) + "\n" + m.Viewport.View()
}
