package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// EventLog is a titled box listing notifications observed during a run,
// one line per entry, oldest first. Addf may be called from any goroutine.
type EventLog struct {
	mu       sync.Mutex
	Title    string
	Lines    []string
	MaxLines int // Keep only the newest MaxLines lines (0 = unlimited)
	Width    int
	start    time.Time
	now      func() time.Time
}

// NewEventLog creates an empty event log whose timestamps are relative to now.
func NewEventLog(title string) *EventLog {
	return &EventLog{
		Title: title,
		Width: GetTerminalWidth(),
		start: time.Now(),
		now:   time.Now,
	}
}

// SetWidth sets the terminal width for responsive rendering
func (l *EventLog) SetWidth(width int) *EventLog {
	l.Width = width
	return l
}

// Addf appends a formatted line prefixed with the time since the log was
// created.
func (l *EventLog) Addf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	elapsed := l.now().Sub(l.start).Round(10 * time.Millisecond)
	l.Lines = append(l.Lines, fmt.Sprintf("+%-7s %s", elapsed, fmt.Sprintf(format, args...)))
}

// Render returns the styled event log box.
func (l *EventLog) Render() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	width := max(l.Width, MinTerminalWidth)

	lines := l.Lines
	truncated := 0
	if l.MaxLines > 0 && len(lines) > l.MaxLines {
		truncated = len(lines) - l.MaxLines
		lines = lines[truncated:]
	}

	var b strings.Builder
	b.WriteString(EventLogTitleStyle.Render(l.Title))
	b.WriteString("\n")
	if truncated > 0 {
		b.WriteString(StepNoteStyle.Render(fmt.Sprintf("... %d earlier events", truncated)))
		b.WriteString("\n")
	}
	if len(lines) == 0 {
		b.WriteString(StepNoteStyle.Render("(no events)"))
	} else {
		b.WriteString(EventLogContentStyle.Render(strings.Join(lines, "\n")))
	}

	return MutedBoxStyle(width - 4).Render(b.String())
}
