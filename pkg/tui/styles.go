package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	PrimaryColor = lipgloss.Color("#6366F1") // Indigo 500
	ProColor     = lipgloss.Color("#0EA5E9") // Sky 500
	ConColor     = lipgloss.Color("#10B981") // Emerald 500
	AccentColor  = lipgloss.Color("#F59E0B") // Amber 500
	MutedColor   = lipgloss.Color("#64748B") // Slate 500
	TextMuted    = lipgloss.Color("#475569") // Slate 600
)

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	ProLabelStyle = lipgloss.NewStyle().
			Foreground(ProColor).
			Bold(true)

	ConLabelStyle = lipgloss.NewStyle().
			Foreground(ConColor).
			Bold(true)

	RoundStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	TraceHeaderStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Bold(true).
				Underline(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	DividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E293B"))

	FooterStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)
