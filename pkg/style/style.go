// Package style holds the terminal styles for envsync's user-facing lines.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#A0A8B0",
	}
)

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Error renders an error line, skipping color when stderr is not a terminal.
func Error(msg string) string {
	return render(ErrorStyle, msg)
}

// Warning renders a warning line.
func Warning(msg string) string {
	return render(WarningStyle, msg)
}

// Muted renders secondary detail like remediation text.
func Muted(msg string) string {
	return render(MutedStyle, msg)
}

func render(s lipgloss.Style, msg string) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return msg
	}
	return s.Render(msg)
}
