package tui

import (
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Phase card borders follow the card status.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			Width(20)
	ActiveCardStyle = CardStyle.
			BorderForeground(lipgloss.Color("214"))
	DoneCardStyle = CardStyle.
			BorderForeground(lipgloss.Color("42"))

	WaitingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	InProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	DoneStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	GateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	CutGateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true)

	ButtonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 2).
			MarginTop(1)
	DisabledButtonStyle = ButtonStyle.
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("245"))

	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	LogStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// StyleForStatus returns the style for a phase status label.
func StyleForStatus(status domain.PhaseStatus) lipgloss.Style {
	switch status {
	case domain.StatusInProgress:
		return InProgressStyle
	case domain.StatusDone:
		return DoneStyle
	default:
		return WaitingStyle
	}
}
