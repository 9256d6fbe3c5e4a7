// Package styles provides shared lipgloss styles for CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryBoldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	TextForegroundBoldStyle = lipgloss.NewStyle().Bold(true)
	TextMutedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	TextSuccessStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	TextWarningStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	TextErrorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
