package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/navdemo/internal/model"
)

// recordItem wraps a Record for use with bubbles/list
type recordItem struct {
	record  *model.Record
	showIDs bool
}

func (i recordItem) FilterValue() string { return i.record.Name }

func (i recordItem) Title() string { return i.record.Name }

func (i recordItem) Description() string {
	noun := "details"
	if i.record.Len() == 1 {
		noun = "detail"
	}
	desc := fmt.Sprintf("%d %s", i.record.Len(), noun)
	if i.showIDs {
		desc += " • " + i.record.ID().Short()
	}
	return desc
}

// detailItem wraps a Detail for use with bubbles/list
type detailItem struct {
	detail  model.Detail
	showIDs bool
}

func (i detailItem) FilterValue() string { return i.detail.Description }

func (i detailItem) Title() string { return i.detail.Description }

func (i detailItem) Description() string {
	desc := fmt.Sprintf("count %d", i.detail.Count)
	if i.showIDs {
		desc += " • " + i.detail.ID().Short()
	}
	return desc
}

// rowDelegate renders one list item per line with a selection arrow
type rowDelegate struct{}

func (d rowDelegate) Height() int { return 1 }

func (d rowDelegate) Spacing() int { return 0 }

func (d rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(list.DefaultItem)
	if !ok {
		return
	}
	note := NoteStyle.Render(it.Description())
	if index == m.Index() {
		_, _ = fmt.Fprint(w, SelectedListItemStyle.Render("→ "+it.Title())+"  "+note)
		return
	}
	_, _ = fmt.Fprint(w, ListItemStyle.Render(it.Title())+"  "+note)
}

// newRowList creates a list with the chrome this application draws itself
// switched off.
func newRowList() list.Model {
	l := list.New(nil, rowDelegate{}, DefaultWidth-6, defaultListHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

// setItems replaces the list content and keeps the cursor in range
func setItems(l *list.Model, items []list.Item) {
	l.SetItems(items)
	if n := len(items); n > 0 && l.Index() >= n {
		l.Select(n - 1)
	}
}
