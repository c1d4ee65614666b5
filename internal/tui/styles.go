package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/navdemo/internal/version"
)

// Application branding constants
const (
	AppName    = "NAVIGATION DEMO"
	ProjectURL = "github.com/muurk/navdemo"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth  = 60
	DefaultWidth      = 80
	DefaultHeight     = 24
	chromeHeight      = 10 // header, footer, borders and title
	defaultListHeight = DefaultHeight - chromeHeight
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	SelectedListItemStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	NoteStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// ButtonStyle renders the single action on the login screen
	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 3)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(14)

	FieldValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)
)

// RenderTitle renders a screen title
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders secondary text under a title
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderError renders an error box
func RenderError(text string) string {
	return ErrorStyle.Render(text)
}

// RenderField renders a "Label: value" line
func RenderField(label, value string) string {
	return FieldLabelStyle.Render(label+":") + FieldValueStyle.Render(value)
}

// BuildHeaderContent creates header content with app name and project URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(ProjectURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// CalculateBoxWidth clamps the terminal width to the supported minimum
func CalculateBoxWidth(terminalWidth int) int {
	return max(terminalWidth, MinTerminalWidth)
}

// RenderApplicationContainer wraps every screen: application header on top,
// context help at the bottom and a border around the whole terminal.
//
//	func (m Model) View() string {
//	    return RenderApplicationContainer(m.buildContent(), m.Help.View(keys), m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	width := CalculateBoxWidth(terminalWidth)
	height := max(terminalHeight, chromeHeight)

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Render(BuildHeaderContent())

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1).
		Render(BuildFooterContent(footerText))

	// Callers control their own content margins
	body := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 1).
		Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered)
}
