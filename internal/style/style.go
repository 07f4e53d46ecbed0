// Package style provides consistent terminal styling using Lipgloss.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Success style for positive outcomes
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // Green
		Bold(true)

	// Warning style for cautionary messages
	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")). // Yellow
		Bold(true)

	// Error style for failures
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")). // Red
		Bold(true)

	// Info style for informational messages
	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")) // Blue

	// Dim style for secondary information
	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")) // Gray

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().
		Bold(true)

	// Profile style for profile names
	Profile = lipgloss.NewStyle().
		Foreground(lipgloss.Color("14")). // Cyan
		Bold(true)

	// Command style for commands the user can run next
	Command = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")) // Yellow

	// SuccessPrefix is the checkmark prefix for success messages
	SuccessPrefix = Success.Render("✓")

	// WarningPrefix is the warning prefix
	WarningPrefix = Warning.Render("⚠")

	// ErrorPrefix is the error prefix
	ErrorPrefix = Error.Render("✗")

	// ArrowPrefix for action indicators
	ArrowPrefix = Info.Render("→")

	// CurrentMarker flags the active profile in listings
	CurrentMarker = Success.Render("*")
)

// Field renders an indented "Label: value" line with labels padded to a
// common width.
func Field(label, value string) string {
	return fmt.Sprintf("    %-9s %s", label+":", value)
}
