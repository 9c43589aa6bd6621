package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 6 (Cyan) for headings, readable on any terminal
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green) for arguments and usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Bright Black / Gray) keeps descriptions dimmer
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow) for flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// SpeakerStyle ANSI 4 (Blue) for speaker names in the transcript view
	SpeakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	// BotStyle ANSI 5 (Magenta) marks assistant replies
	BotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	// ErrStyle ANSI 1 (Red) for errors surfaced to the terminal
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
