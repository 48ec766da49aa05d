// Package ui provides Charm-based output styling for itermprofile
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var activePalette = DefaultPalette()

var (
	// Color palette, replaced by ApplyPalette
	Primary    lipgloss.TerminalColor
	Secondary  lipgloss.TerminalColor
	Accent     lipgloss.TerminalColor
	Info       lipgloss.TerminalColor
	Success    lipgloss.TerminalColor
	Warning    lipgloss.TerminalColor
	Error      lipgloss.TerminalColor
	Muted      lipgloss.TerminalColor
	Background lipgloss.TerminalColor
	Foreground lipgloss.TerminalColor
	Border     lipgloss.TerminalColor
	Highlight  lipgloss.TerminalColor

	// Text styles
	Bold         lipgloss.Style
	Title        lipgloss.Style
	Tagline      lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	HintStyle    lipgloss.Style
	KeyStyle     lipgloss.Style

	// Box styles
	InfoBox    lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style

	// Status indicators
	StatusRunning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style

	HeaderStyle lipgloss.Style
)

func init() {
	ApplyPalette(DefaultPalette())
}

func buildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Tagline = lipgloss.NewStyle().
		Foreground(Secondary).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)

	HintStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	KeyStyle = lipgloss.NewStyle().
		Foreground(Accent)

	InfoBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 1).
		MarginTop(1)

	SuccessBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success).
		Padding(0, 1).
		MarginTop(1)

	ErrorBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(0, 1).
		MarginTop(1)

	StatusRunning = lipgloss.NewStyle().
		Foreground(Secondary).
		SetString("●")

	StatusSuccess = lipgloss.NewStyle().
		Foreground(Success).
		SetString("✓")

	StatusWarning = lipgloss.NewStyle().
		Foreground(Warning).
		SetString("!")

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		SetString("✗")

	StatusPending = lipgloss.NewStyle().
		Foreground(Muted).
		SetString("○")

	HeaderStyle = lipgloss.NewStyle().
		Foreground(Background).
		Background(Primary).
		Padding(0, 1).
		Bold(true)
}

// Header renders a section title bar
func Header(title string) string {
	return HeaderStyle.Render(title)
}

// KeyValue renders an aligned "key: value" line
func KeyValue(key string, value string) string {
	return fmt.Sprintf("  %s %s", KeyStyle.Render(fmt.Sprintf("%-14s", key+":")), value)
}

// FormatStep formats a progress line with a status glyph
func FormatStep(status string, name string) string {
	var statusIcon string
	switch status {
	case "running":
		statusIcon = StatusRunning.String()
	case "success":
		statusIcon = StatusSuccess.String()
	case "warning":
		statusIcon = StatusWarning.String()
	case "error":
		statusIcon = StatusError.String()
	default:
		statusIcon = StatusPending.String()
	}

	return "  " + statusIcon + " " + name
}
