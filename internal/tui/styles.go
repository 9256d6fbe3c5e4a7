package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	insStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	delStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true)

	mediaAddedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	mediaRemovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	cardFocusStyle = cardStyle.
			BorderForeground(lipgloss.Color("12"))

	itemFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

	selectedBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Render("[selected]")
	pendingBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("[...]")
	acceptedBadge  = okStyle.Render("[accepted]")
	deniedBadge    = errStyle.Render("[denied]")
	deleteReqBadge = errStyle.Render("[removal requested]")
	newNoteBadge   = warnStyle.Render("[unpublished]")
)
