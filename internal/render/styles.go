package render

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#06B6D4")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorDanger    = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorSelected  = lipgloss.Color("#1F2937")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorSelected).
				Foreground(ColorPrimary).
				Bold(true)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	DangerStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBorder).
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BarFilledStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	BarEmptyStyle  = lipgloss.NewStyle().Foreground(ColorBorder)
)
