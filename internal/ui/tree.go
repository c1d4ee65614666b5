package ui

import (
	"fmt"
	"strings"

	"github.com/muurk/navdemo/internal/model"
)

// RenderRecordTree draws records and their details as an indented tree:
//
//	Record 1
//	├─ Detail number 1   7
//	└─ Detail number 2   0
//
// showIDs appends the short identifier of every entry.
func RenderRecordTree(records []*model.Record, showIDs bool) string {
	if len(records) == 0 {
		return StepNoteStyle.Render("(no records)")
	}

	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		name := TreeRecordStyle.Render(r.Name)
		if showIDs {
			name += " " + StepNoteStyle.Render(r.ID().Short())
		}
		b.WriteString(name)

		details := r.Details()
		descWidth := 0
		for _, d := range details {
			descWidth = max(descWidth, len(d.Description))
		}
		for j, d := range details {
			branch := "├─"
			if j == len(details)-1 {
				branch = "└─"
			}
			line := fmt.Sprintf("%s %s  %2d", branch, padRight(d.Description, descWidth), d.Count)
			if showIDs {
				line += "  " + d.ID().Short()
			}
			b.WriteString("\n")
			b.WriteString(TreeDetailStyle.Render(line))
		}
	}
	return b.String()
}
