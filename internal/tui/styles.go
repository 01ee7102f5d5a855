// Package tui provides the terminal widget: the FAQ viewer pane with
// the chat panel overlaid on demand.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorPrimary  = lipgloss.Color("#7c6df2")
	colorAccent   = lipgloss.Color("#56b6c2")
	colorBorder   = lipgloss.Color("#3e4451")
	colorText     = lipgloss.Color("#e4e4e4")
	colorTextDim  = lipgloss.Color("#9aa0ae")
	colorTextMute = lipgloss.Color("#5c6370")
	colorError    = lipgloss.Color("#e06c75")
)

var (
	// Viewer pane frame
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	// Chat panel frame
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	// Header line of the chat panel
	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// User message label
	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	// Assistant message label
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Citation chips under an answer
	citationStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	// Key hint in the status bar
	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Hint description text
	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	// Status bar line
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextMute)

	// Loading indicator
	loadingStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	// Fixed notices (no-match, error)
	noticeStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	// Launcher hint shown while the panel is closed
	launcherStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 1).
			Bold(true)
)
